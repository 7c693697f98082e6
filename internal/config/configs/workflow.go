package configs

// Workflow tunes the campaign pipeline.
type Workflow struct {
	// Variants is used when a start request does not name a count.
	Variants int `env:"VARIANTS" envDefault:"2"`
	// PrimaryMetric decides the winner. One of open_rate, click_rate,
	// conversion_rate or click_through_rate.
	PrimaryMetric string `env:"PRIMARY_METRIC" envDefault:"open_rate"`
	// Seed makes assignment and estimates reproducible. Zero seeds from
	// the clock.
	Seed int64 `env:"SEED" envDefault:"0"`
}

// Audience configures the CSV audience source.
type Audience struct {
	Dir     string `env:"DIR" envDefault:"data"`
	Default string `env:"DEFAULT" envDefault:"audience.csv"`
	Limit   int    `env:"LIMIT" envDefault:"50"`
}

// Results configures where result documents are written.
type Results struct {
	Dir string `env:"DIR" envDefault:"results"`
}

// GenAI configures the Gemini generator. Without an API key strategies
// and content come from the built-in templates.
type GenAI struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-2.5-flash"`
}

package dynamo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// API is the subset of the DynamoDB client used by the repository.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// MaxStateBytes bounds the encoded campaign state so that an item stays
// under DynamoDB's 400 KB limit together with its other attributes. A
// recipient costs roughly 290 bytes across the audience, its group and its
// dispatch outcome, so this fits campaigns of about 1300 recipients.
const MaxStateBytes = 380 << 10

// ErrStateTooLarge is returned when a campaign does not fit in one item.
var ErrStateTooLarge = errors.New("campaign state exceeds the DynamoDB item size limit")

// item is the stored form of a campaign. The state itself is kept as a
// JSON document so the table schema does not follow every field change.
type item struct {
	ID        string `dynamodbav:"campaign_id"`
	Stage     string `dynamodbav:"stage"`
	State     string `dynamodbav:"state"`
	Version   int64  `dynamodbav:"version"`
	CreatedAt string `dynamodbav:"created_at"`
}

// CampaignRepository implements port.CampaignRepository on a DynamoDB table
// keyed by campaign_id, using conditional writes on the version attribute.
type CampaignRepository struct {
	db    API
	table string
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// NewClient builds a DynamoDB client from cfg, pointing it at endpoint when
// one is given (for DynamoDB Local).
func NewClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// NewCampaignRepository returns a repository on table.
func NewCampaignRepository(db API, table string) *CampaignRepository {
	return &CampaignRepository{db: db, table: table}
}

// Create stores a new campaign at version 1.
func (r *CampaignRepository) Create(ctx context.Context, st *domain.CampaignState) error {
	st.Version = 1
	av, err := marshalItem(*st)
	if err != nil {
		return err
	}
	_, err = r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(campaign_id)"),
	})
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return fmt.Errorf("campaign %s already exists", st.ID)
	}
	return err
}

// Get returns a campaign by id using a consistent read.
func (r *CampaignRepository) Get(ctx context.Context, id string) (domain.CampaignState, error) {
	out, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"campaign_id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.CampaignState{}, err
	}
	if out.Item == nil {
		return domain.CampaignState{}, domain.ErrNotFound
	}
	return unmarshalItem(out.Item)
}

// Save writes st when the stored version still equals st.Version.
func (r *CampaignRepository) Save(ctx context.Context, st *domain.CampaignState) error {
	next := *st
	next.Version = st.Version + 1
	av, err := marshalItem(next)
	if err != nil {
		return err
	}
	_, err = r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(campaign_id) AND version = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: strconv.FormatInt(st.Version, 10)},
		},
	})
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		if _, gerr := r.Get(ctx, st.ID); errors.Is(gerr, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("campaign %s at version %d: %w", st.ID, st.Version, domain.ErrVersionConflict)
	}
	if err != nil {
		return err
	}
	st.Version++
	return nil
}

// List scans the table and returns up to limit campaigns, newest first.
func (r *CampaignRepository) List(ctx context.Context, limit int) ([]domain.CampaignState, error) {
	var out []domain.CampaignState
	p := dynamodb.NewScanPaginator(r.db, &dynamodb.ScanInput{TableName: aws.String(r.table)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, av := range page.Items {
			st, err := unmarshalItem(av)
			if err != nil {
				return nil, err
			}
			out = append(out, st)
		}
	}
	slices.SortFunc(out, func(a, b domain.CampaignState) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func marshalItem(st domain.CampaignState) (map[string]types.AttributeValue, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode campaign: %w", err)
	}
	if len(data) > MaxStateBytes {
		return nil, fmt.Errorf("campaign %s encodes to %d bytes: %w", st.ID, len(data), ErrStateTooLarge)
	}
	return attributevalue.MarshalMap(item{
		ID:        st.ID,
		Stage:     string(st.Stage),
		State:     string(data),
		Version:   st.Version,
		CreatedAt: st.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

func unmarshalItem(av map[string]types.AttributeValue) (domain.CampaignState, error) {
	var it item
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return domain.CampaignState{}, fmt.Errorf("decode campaign item: %w", err)
	}
	var st domain.CampaignState
	if err := json.Unmarshal([]byte(it.State), &st); err != nil {
		return domain.CampaignState{}, fmt.Errorf("decode campaign: %w", err)
	}
	if !st.Stage.Valid() {
		return domain.CampaignState{}, fmt.Errorf("decode campaign %s: unknown stage %q", st.ID, st.Stage)
	}
	st.Version = it.Version
	st.InitMaps()
	return st, nil
}

// Package metadata looks up titles of source files in a DynamoDB table whose
// partition key "PK" is the file name.
package metadata

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/jsphweid/jianpu/model"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("no metadata for file")

type Store struct {
	client *dynamodb.DynamoDB
	table  string
}

// New defaults the region to "localhost" for a local DynamoDB endpoint.
func New(cfg *aws.Config, table string) (*Store, error) {
	if cfg.Region == nil {
		cfg = cfg.WithRegion("localhost")
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return &Store{client: dynamodb.New(sess), table: table}, nil
}

func (s *Store) Get(ctx context.Context, filename string) (model.Metadata, error) {
	var res model.Metadata

	out, err := s.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		},
	})
	if err != nil {
		return res, errors.Wrap(err, "error from DynamoDB")
	}
	if len(out.Item) == 0 {
		return res, errors.Wrap(ErrNotFound, filename)
	}

	item := out.Item
	if v, ok := item["Year"]; ok && v.N != nil {
		year, _ := strconv.ParseUint(*v.N, 10, 32)
		res.Year = uint(year)
	}
	res.Artist = stringAttr(item, "Artist")
	res.Release = stringAttr(item, "Release")
	res.Title = stringAttr(item, "Title")
	return res, nil
}

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v.S != nil {
		return *v.S
	}
	return ""
}

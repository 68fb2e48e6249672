package db

import (
	"strconv"
	"time"

	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/model"
	"github.com/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

func newClient() (*dynamodb.DynamoDB, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return dynamodb.New(sess), nil
}

func renderItem(rec model.RenderRecord) map[string]*dynamodb.AttributeValue {
	item := map[string]*dynamodb.AttributeValue{
		"PK":        {S: aws.String(rec.ID)},
		"SongId":    {S: aws.String(rec.SongID)},
		"Path":      {S: aws.String(rec.Path)},
		"Tempo":     {N: aws.String(strconv.FormatFloat(rec.Tempo, 'f', -1, 64))},
		"Bars":      {N: aws.String(strconv.Itoa(rec.Bars))},
		"Notes":     {N: aws.String(strconv.Itoa(rec.Notes))},
		"CreatedAt": {S: aws.String(rec.CreatedAt.UTC().Format(time.RFC3339))},
	}
	return item
}

// RecordRender stores one render record in the renders table.
func RecordRender(rec model.RenderRecord) error {
	if rec.ID == "" {
		return errors.New("render record has no id")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(constants.RendersTable),
		Item:      renderItem(rec),
	}
	if _, err := client.PutItem(input); err != nil {
		return errors.Wrap(err, "error from DynamoDB")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
)

type DynamoConfig struct {
	StoriesTableName string
	AuthorIndexName  string
}

func GetDynamoConfig() (*DynamoConfig, error) {
	tableName := os.Getenv("STORIES_TABLE_NAME")
	if tableName == "" {
		return nil, fmt.Errorf("STORIES_TABLE_NAME must be set")
	}

	indexName := os.Getenv("STORIES_AUTHOR_INDEX_NAME")
	if indexName == "" {
		return nil, fmt.Errorf("STORIES_AUTHOR_INDEX_NAME must be set")
	}

	return &DynamoConfig{
		StoriesTableName: tableName,
		AuthorIndexName:  indexName,
	}, nil
}

package storage

import (
	"encoding/json"
	"errors"

	"feedsim/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRunConfig(c model.RunConfigRecord) ([]byte, error) {
	return json.Marshal(c)
}

func DecodeRunConfig(data []byte) (model.RunConfigRecord, error) {
	var cfg model.RunConfigRecord
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.RunConfigRecord{}, err
	}
	if err := checkVersion(cfg.VersionedRecord); err != nil {
		return model.RunConfigRecord{}, err
	}
	return cfg, nil
}

func EncodeRunSummary(s model.RunSummaryRecord) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeRunSummary(data []byte) (model.RunSummaryRecord, error) {
	var summary model.RunSummaryRecord
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.RunSummaryRecord{}, err
	}
	if err := checkVersion(summary.VersionedRecord); err != nil {
		return model.RunSummaryRecord{}, err
	}
	return summary, nil
}

func EncodeUsers(users []model.UserRecord) ([]byte, error) {
	return json.Marshal(users)
}

func DecodeUsers(data []byte) ([]model.UserRecord, error) {
	var users []model.UserRecord
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	for _, user := range users {
		if err := checkVersion(user.VersionedRecord); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func EncodePosts(posts []model.PostRecord) ([]byte, error) {
	return json.Marshal(posts)
}

func DecodePosts(data []byte) ([]model.PostRecord, error) {
	var posts []model.PostRecord
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, err
	}
	for _, post := range posts {
		if err := checkVersion(post.VersionedRecord); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}

package api

// Identity captures a record's key as the backend sends it. Some collections
// use "_id", others "id"; every ingest goes through Id() so the rest of the
// client sees a single identity field.
type Identity struct {
	MongoId string `json:"_id,omitempty"`
	PlainId string `json:"id,omitempty"`
}

func (i Identity) Id() string {
	if i.MongoId != "" {
		return i.MongoId
	}
	return i.PlainId
}

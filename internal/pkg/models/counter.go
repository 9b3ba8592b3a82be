package models

type Counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

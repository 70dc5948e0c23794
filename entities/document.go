package entities

import (
	"gorm.io/datatypes"
)

// Document is one record of the collection-based store. Collection is a slash
// separated path such as "users/<uid>/items".
type Document struct {
	Collection string         `gorm:"primaryKey;size:512" json:"collection"`
	ID         string         `gorm:"primaryKey;size:255" json:"id"`
	Data       datatypes.JSON `json:"data"`

	CreatedAt int64 `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli" json:"updated_at"`
}

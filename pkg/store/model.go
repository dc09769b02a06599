package store

import "gorm.io/plugin/soft_delete"

// ProfileRecord is one stored profile.
type ProfileRecord struct {
	ID     int64  `json:"id" gorm:"primarykey"`
	Name   string `json:"name" gorm:"uniqueIndex:idx_profile_name"`
	Source string `json:"source"`

	CreatedAt int64 `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt int64 `json:"updated_at" gorm:"autoUpdateTime:false"`

	/* 0 live, unix nanoseconds once deleted */
	Deleted soft_delete.DeletedAt `json:"-" gorm:"softDelete:nano;uniqueIndex:idx_profile_name;default:0"`
}

func (ProfileRecord) TableName() string {
	return "profile"
}

package model

import "time"

type RoomType string

const (
	RoomBedroom    RoomType = "BEDROOM"
	RoomBathroom   RoomType = "BATHROOM"
	RoomKitchen    RoomType = "KITCHEN"
	RoomLivingRoom RoomType = "LIVING_ROOM"
	RoomOther      RoomType = "OTHER"
)

type RoomStatus string

const (
	RoomNotStarted RoomStatus = "NOT_STARTED"
	RoomInProgress RoomStatus = "IN_PROGRESS"
	RoomBlocked    RoomStatus = "BLOCKED"
	RoomDone       RoomStatus = "DONE"
)

type Room struct {
	ID        int64      `json:"id"`
	ProjectID int64      `json:"project_id"`
	Name      string     `json:"name"`
	Type      RoomType   `json:"type"`
	Status    RoomStatus `json:"status"`
	IsUsable  bool       `json:"is_usable"`
	Icon      string     `json:"icon,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NormalizeRoomType coerces unknown values from the store to OTHER.
func NormalizeRoomType(v string) RoomType {
	switch RoomType(v) {
	case RoomBedroom, RoomBathroom, RoomKitchen, RoomLivingRoom, RoomOther:
		return RoomType(v)
	}
	return RoomOther
}

// NormalizeRoomStatus coerces unknown values from the store to NOT_STARTED.
func NormalizeRoomStatus(v string) RoomStatus {
	switch RoomStatus(v) {
	case RoomNotStarted, RoomInProgress, RoomBlocked, RoomDone:
		return RoomStatus(v)
	}
	return RoomNotStarted
}

func (r *Room) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	return nil
}

package v1

import (
	md_uuid "github.com/moneydash/backend/internal/uuid"
)

type URIID struct {
	ID md_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

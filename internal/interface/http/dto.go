package handlers

import (
	"time"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
)

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Points    int64     `json:"points"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Points:    u.Points,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type itemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Size        string    `json:"size"`
	Condition   string    `json:"condition"`
	Tags        []string  `json:"tags"`
	ImageURL    string    `json:"image_url"`
	Price       int64     `json:"price"`
	Status      string    `json:"status"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

func toItemResponse(it *entity.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		OwnerID:     it.OwnerID,
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category,
		Type:        it.Type,
		Size:        it.Size,
		Condition:   it.Condition,
		Tags:        it.Tags,
		ImageURL:    it.ImageURL,
		Price:       it.Price,
		Status:      it.Status,
		Approved:    it.Approved,
		CreatedAt:   it.CreatedAt,
	}
}

func toItemResponses(items []*entity.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateItemRequest struct {
	EAN     string `json:"ean" binding:"required"`
	Amount  int    `json:"amount"`
	Name    string `json:"name" binding:"required"`
	Popular string `json:"popular" binding:"required"`
}

func (req *CreateItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EAN, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Amount, validation.Min(0)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Popular, validation.Required, validation.Length(1, 10)),
	)
}

type UpdateItemRequest struct {
	EAN     string `json:"ean" binding:"required"`
	Amount  int    `json:"amount"`
	Name    string `json:"name" binding:"required"`
	Popular string `json:"popular" binding:"required"`
}

func (req *UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EAN, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Amount, validation.Min(0)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Popular, validation.Required, validation.Length(1, 10)),
	)
}

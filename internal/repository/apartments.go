package repository

import (
	"context"

	"aptbill/client/internal/api"
	"aptbill/client/internal/models"
)

// Apartments covers the apartment and floor entity family.
type Apartments struct {
	api *api.Client
}

func NewApartments(client *api.Client) *Apartments {
	return &Apartments{api: client}
}

func (r *Apartments) List(ctx context.Context) ([]models.Apartment, error) {
	return r.api.Apartments(ctx)
}

func (r *Apartments) Create(ctx context.Context, floorID, apartmentNumber, meterNumber string) (models.Apartment, error) {
	return r.api.CreateApartment(ctx, api.ApartmentInput{
		FloorID:         floorID,
		ApartmentNumber: apartmentNumber,
		MeterNumber:     meterNumber,
	})
}

func (r *Apartments) Update(ctx context.Context, id, floorID, apartmentNumber, meterNumber string) (models.Apartment, error) {
	return r.api.UpdateApartment(ctx, id, api.ApartmentInput{
		FloorID:         floorID,
		ApartmentNumber: apartmentNumber,
		MeterNumber:     meterNumber,
	})
}

func (r *Apartments) Delete(ctx context.Context, id string) (models.StatusMessage, error) {
	return r.api.DeleteApartment(ctx, id)
}

func (r *Apartments) ListFloors(ctx context.Context) ([]models.Floor, error) {
	return r.api.Floors(ctx)
}

func (r *Apartments) CreateFloor(ctx context.Context, floorNumber int, description *string) (models.Floor, error) {
	return r.api.CreateFloor(ctx, api.FloorInput{FloorNumber: floorNumber, Description: description})
}

func (r *Apartments) UpdateFloor(ctx context.Context, id string, floorNumber int, description *string) (models.Floor, error) {
	return r.api.UpdateFloor(ctx, id, api.FloorInput{FloorNumber: floorNumber, Description: description})
}

func (r *Apartments) DeleteFloor(ctx context.Context, id string) (models.StatusMessage, error) {
	return r.api.DeleteFloor(ctx, id)
}

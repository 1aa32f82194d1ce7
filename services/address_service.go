package services

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/models"
)

type AddressService struct {
	addresses AddressStore
}

func NewAddressService(addresses AddressStore) *AddressService {
	return &AddressService{addresses: addresses}
}

func (s *AddressService) List(ctx context.Context, actor models.Actor) ([]models.Address, error) {
	addresses, err := s.addresses.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

func (s *AddressService) Get(ctx context.Context, actor models.Actor, id int64) (*models.Address, error) {
	address, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Address not found")
		}
		return nil, fmt.Errorf("load address: %w", err)
	}
	if address.UserID != actor.ID {
		return nil, models.Forbidden("You don't have permission to access this address")
	}
	return address, nil
}

// Create stores a new address. The first address of a user always becomes
// the default one.
func (s *AddressService) Create(ctx context.Context, actor models.Actor, req models.AddressRequest) (*models.Address, error) {
	count, err := s.addresses.CountByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("count addresses: %w", err)
	}

	address := &models.Address{
		UserID:        actor.ID,
		Address:       req.Address,
		DetailAddress: req.DetailAddress,
		City:          req.City,
		Label:         req.Label,
		Note:          req.Note,
	}
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	if count == 0 || req.IsDefault {
		if err := s.addresses.SetDefault(ctx, actor.ID, address.ID); err != nil {
			return nil, fmt.Errorf("set default address: %w", err)
		}
		address.IsDefault = true
	}
	return address, nil
}

func (s *AddressService) Update(ctx context.Context, actor models.Actor, id int64, req models.AddressRequest) (*models.Address, error) {
	address, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	address.Address = req.Address
	address.DetailAddress = req.DetailAddress
	address.City = req.City
	address.Label = req.Label
	address.Note = req.Note
	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	if req.IsDefault && !address.IsDefault {
		if err := s.addresses.SetDefault(ctx, actor.ID, address.ID); err != nil {
			return nil, fmt.Errorf("set default address: %w", err)
		}
		address.IsDefault = true
	}
	return address, nil
}

func (s *AddressService) SetDefault(ctx context.Context, actor models.Actor, id int64) (*models.Address, error) {
	address, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.addresses.SetDefault(ctx, actor.ID, address.ID); err != nil {
		return nil, fmt.Errorf("set default address: %w", err)
	}
	address.IsDefault = true
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.addresses.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

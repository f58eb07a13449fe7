package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/class_fund_app/internal/core/domain"
	"github.com/SscSPs/class_fund_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelBox converts a domain Box to its stored record
func ToModelBox(d domain.Box) models.Box {
	m := models.Box{
		ID:   models.BoxID(d.ID),
		Name: d.Name,
	}
	if d.Balance.Valid {
		n := json.Number(d.Balance.Decimal.String())
		m.Balance = &n
	}
	return m
}

// ToModelBoxSlice converts a slice of domain Boxes to stored records
func ToModelBoxSlice(ds []domain.Box) []models.Box {
	ms := make([]models.Box, len(ds))
	for i, d := range ds {
		ms[i] = ToModelBox(d)
	}
	return ms
}

// ToDomainBox converts a stored record to a domain Box
func ToDomainBox(m models.Box) (domain.Box, error) {
	d := domain.Box{
		ID:   string(m.ID),
		Name: m.Name,
	}
	if m.Balance != nil {
		amount, err := decimal.NewFromString(m.Balance.String())
		if err != nil {
			return domain.Box{}, fmt.Errorf("invalid balance %q for box %s: %w", m.Balance.String(), m.ID, err)
		}
		d.Balance = domain.NewBalance(amount)
	}
	return d, nil
}

// ToDomainBoxSlice converts stored records to domain Boxes, keeping their order
func ToDomainBoxSlice(ms []models.Box) ([]domain.Box, error) {
	ds := make([]domain.Box, len(ms))
	for i, m := range ms {
		d, err := ToDomainBox(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}

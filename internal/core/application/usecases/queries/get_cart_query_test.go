package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCartQuery_Valid(t *testing.T) {
	customerID := kernel.NewUUID()

	query, err := queries.NewGetCartQuery(customerID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, customerID, query.CustomerID())
}

func TestNewGetCartQuery_EmptyCustomerID(t *testing.T) {
	_, err := queries.NewGetCartQuery(kernel.UUID{})

	require.Error(t, err)
}

func TestGetCartQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetCartQuery{}

	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCartQueryIsNotConstructed)
}

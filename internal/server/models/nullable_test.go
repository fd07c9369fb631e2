package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullable_UnmarshalJSON(t *testing.T) {
	var body struct {
		Budget Nullable[float64] `json:"budget"`
		Note   Nullable[string]  `json:"note"`
		Other  Nullable[string]  `json:"other"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"budget": null, "note": "hi"}`), &body))

	assert.True(t, body.Budget.Set)
	assert.Nil(t, body.Budget.Value)
	assert.Nil(t, body.Budget.ValueOrNil())

	assert.True(t, body.Note.Set)
	require.NotNil(t, body.Note.Value)
	assert.Equal(t, "hi", body.Note.ValueOrNil())

	assert.False(t, body.Other.Set)

	assert.Error(t, json.Unmarshal([]byte(`{"budget": "lots"}`), &body))
}

func TestTripUpdate_Apply(t *testing.T) {
	budget := 500.0
	desc := "spring"
	base := Trip{Name: "Lisbon", Budget: &budget, Description: &desc}

	tr := base
	TripUpdate{Name: func() *string { s := "Porto"; return &s }()}.Apply(&tr)
	assert.Equal(t, "Porto", tr.Name)
	require.NotNil(t, tr.Budget)
	require.NotNil(t, tr.Description)

	tr = base
	TripUpdate{Budget: Null[float64](), Description: Null[string]()}.Apply(&tr)
	assert.Nil(t, tr.Budget)
	assert.Nil(t, tr.Description)

	tr = base
	TripUpdate{Budget: NullableOf(750.0)}.Apply(&tr)
	require.NotNil(t, tr.Budget)
	assert.Equal(t, 750.0, *tr.Budget)
	assert.Equal(t, "spring", *tr.Description)
}

package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khatapp/khata/internal/model"
)

const customerJSON = `{"id":"cust","name":"Asha","type":"customer","email":"asha@example.com","phone":"+91 98765 43210","address":"12 MG Road","city":"Pune","state":"MH"}`

// seedLedger adds the widget product and a customer to a fresh ledger.
func seedLedger(t *testing.T, db string) {
	t.Helper()
	_, err := runCLI(t, db, "product", "add", "--json", widgetJSON)
	require.NoError(t, err)
	_, err = runCLI(t, db, "contact", "add", "--json", customerJSON)
	require.NoError(t, err)
}

func TestSaleRecordAndList(t *testing.T) {
	db := testDB(t)
	seedLedger(t, db)

	out, err := runCLI(t, db, "sale", "record",
		"--contact", "cust",
		"--items", `[{"productId":"p1","quantity":2,"price":18}]`,
		"--total", "36",
	)
	require.NoError(t, err)
	status, data, _ := decodeResponse(t, out)
	assert.Equal(t, "ok", status)

	var tx model.Transaction
	require.NoError(t, json.Unmarshal(data, &tx))
	assert.NotEmpty(t, tx.ID)
	assert.NotEmpty(t, tx.Date)
	assert.Equal(t, 36.0, tx.Total)

	// Stock moved from 4 to 2.
	out, err = runCLI(t, db, "product", "list")
	require.NoError(t, err)
	_, data, _ = decodeResponse(t, out)
	var products []model.Product
	require.NoError(t, json.Unmarshal(data, &products))
	assert.Equal(t, 2, products[0].Stock)

	out, err = runCLI(t, db, "sale", "list")
	require.NoError(t, err)
	_, data, _ = decodeResponse(t, out)
	var sales []model.Transaction
	require.NoError(t, json.Unmarshal(data, &sales))
	assert.Len(t, sales, 1)
}

func TestSaleRecord_InsufficientStock(t *testing.T) {
	db := testDB(t)
	seedLedger(t, db)

	out, err := runCLI(t, db, "sale", "record",
		"--contact", "cust",
		"--items", `[{"productId":"p1","quantity":5,"price":18}]`,
		"--total", "90",
	)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	status, _, cliErr := decodeResponse(t, out)
	assert.Equal(t, "error", status)
	require.NotNil(t, cliErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", cliErr.Code)

	// Nothing was persisted.
	out, err = runCLI(t, db, "product", "list")
	require.NoError(t, err)
	_, data, _ := decodeResponse(t, out)
	var products []model.Product
	require.NoError(t, json.Unmarshal(data, &products))
	assert.Equal(t, 4, products[0].Stock)
}

func TestSaleRecord_UnknownContact(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, db, "product", "add", "--json", widgetJSON)
	require.NoError(t, err)

	out, err := runCLI(t, db, "sale", "record",
		"--contact", "ghost",
		"--items", `[{"productId":"p1","quantity":1,"price":18}]`,
		"--total", "18",
	)
	require.Error(t, err)
	_, _, cliErr := decodeResponse(t, out)
	require.NotNil(t, cliErr)
	assert.Equal(t, "NOT_FOUND", cliErr.Code)
}

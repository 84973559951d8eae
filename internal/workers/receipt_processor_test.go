// internal/workers/receipt_processor_test.go
package workers_test

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clementech/checkout-be/internal/workers"
	"github.com/clementech/checkout-be/test/helpers"
)

func TestReceiptProcessor_ProcessReceipt(t *testing.T) {
	repos := helpers.NewFileRepos(t)
	ctx := context.Background()

	bill := helpers.CreateTestBill(42, *helpers.CreateTestItem())
	require.NoError(t, repos.Bills.Append(ctx, *bill))

	processor := workers.NewReceiptProcessor(repos.Bills, repos.Receipts, helpers.TestLogger())

	task, err := workers.NewReceiptRenderTask(42)
	require.NoError(t, err)
	require.Equal(t, workers.TypeReceiptRender, task.Type())

	require.NoError(t, processor.ProcessReceipt(ctx, task))

	path, err := repos.Receipts.Write(*bill)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestReceiptProcessor_UnknownBillFailsForRetry(t *testing.T) {
	repos := helpers.NewFileRepos(t)
	processor := workers.NewReceiptProcessor(repos.Bills, repos.Receipts, helpers.TestLogger())

	task, err := workers.NewReceiptRenderTask(99)
	require.NoError(t, err)

	err = processor.ProcessReceipt(context.Background(), task)
	require.Error(t, err, "a missing bill must fail the task so it is retried")
	assert.Contains(t, err.Error(), "not found")
}

func TestReceiptProcessor_MalformedPayload(t *testing.T) {
	repos := helpers.NewFileRepos(t)
	processor := workers.NewReceiptProcessor(repos.Bills, repos.Receipts, helpers.TestLogger())

	task := asynq.NewTask(workers.TypeReceiptRender, []byte("not json"))
	err := processor.ProcessReceipt(context.Background(), task)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `make mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/catalog_repository.go -destination=catalog_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/bill_repository.go -destination=bill_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/receipt.go -destination=receipt_renderer_mock.go -package=mocks

// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `go generate ./test/mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/document_store.go -destination=document_store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/inventory_service.go -destination=inventory_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/supplier.go -destination=supplier_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/storage.go -destination=storage_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/alerts.go -destination=alerts_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/importing.go -destination=importing_mock.go -package=mocks

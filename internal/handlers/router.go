// internal/handlers/router.go
package handlers

import (
	"net/http"
	"strings"
)

// APIPrefix is the mount point of the versioned API
const APIPrefix = "/api/v1"

// Router groups the handlers served by the API. Health and Photos are
// optional.
type Router struct {
	Inventory  *InventoryHandler
	Suppliers  *SupplierHandler
	Categories *CategoryHandler
	Orders     *OrderHandler
	Photos     *PhotoHandler
	Imports    *ImportHandler
	Exports    *ExportHandler
	Dashboard  *DashboardHandler
	Health     *HealthHandler

	// PhotoFiles serves locally stored photos under PhotoPrefix when set
	PhotoFiles  http.Handler
	PhotoPrefix string
}

// Register adds every route to mux using method-specific patterns
func (rt *Router) Register(mux *http.ServeMux) {
	api := APIPrefix

	// Health and readiness endpoints
	if rt.Health != nil {
		mux.HandleFunc("GET /health", rt.Health.Health)
		mux.HandleFunc("GET /ready", rt.Health.Readiness)
		mux.HandleFunc("GET "+api+"/health", rt.Health.Health)
	}

	// Inventory
	inv := rt.Inventory
	mux.HandleFunc("GET "+api+"/inventory", inv.ListInventory)
	mux.HandleFunc("POST "+api+"/inventory", inv.CreateInventory)
	mux.HandleFunc("GET "+api+"/inventory/next-id", inv.NextID)
	mux.HandleFunc("POST "+api+"/inventory/bulk", inv.BulkInventory)
	mux.HandleFunc("GET "+api+"/inventory/{id}", inv.GetInventory)
	mux.HandleFunc("PUT "+api+"/inventory/{id}", inv.UpdateInventory)
	mux.HandleFunc("PATCH "+api+"/inventory/{id}", inv.UpdateInventory)
	mux.HandleFunc("DELETE "+api+"/inventory/{id}", inv.DeleteInventory)
	mux.HandleFunc("DELETE "+api+"/inventory/{id}/permanent", inv.PermanentlyDeleteInventory)
	mux.HandleFunc("POST "+api+"/inventory/{id}/archive", inv.ArchiveInventory)
	mux.HandleFunc("POST "+api+"/inventory/{id}/restore", inv.RestoreInventory)
	mux.HandleFunc("GET "+api+"/locations/next", inv.NextLocation)
	if rt.Photos != nil {
		mux.HandleFunc("POST "+api+"/inventory/{id}/photo", rt.Photos.UploadPhoto)
	}

	// Suppliers
	mux.HandleFunc("GET "+api+"/suppliers", rt.Suppliers.ListSuppliers)
	mux.HandleFunc("POST "+api+"/suppliers", rt.Suppliers.CreateSupplier)
	mux.HandleFunc("GET "+api+"/suppliers/{id}", rt.Suppliers.GetSupplier)
	mux.HandleFunc("PUT "+api+"/suppliers/{id}", rt.Suppliers.UpdateSupplier)
	mux.HandleFunc("DELETE "+api+"/suppliers/{id}", rt.Suppliers.DeleteSupplier)

	// Categories
	mux.HandleFunc("GET "+api+"/categories", rt.Categories.ListCategories)
	mux.HandleFunc("POST "+api+"/categories", rt.Categories.AddCategory)
	mux.HandleFunc("POST "+api+"/categories/{name}/subcategories", rt.Categories.AddSubcategory)

	// Sales orders
	mux.HandleFunc("GET "+api+"/orders", rt.Orders.ListOrders)
	mux.HandleFunc("POST "+api+"/orders", rt.Orders.Checkout)
	mux.HandleFunc("GET "+api+"/orders/{id}", rt.Orders.GetOrder)

	// Import
	mux.HandleFunc("POST "+api+"/import/preview", rt.Imports.Preview)
	mux.HandleFunc("POST "+api+"/import/confirm", rt.Imports.Confirm)
	mux.HandleFunc("POST "+api+"/import/jobs", rt.Imports.CreateJob)
	mux.HandleFunc("GET "+api+"/import/jobs/{jobId}", rt.Imports.GetJob)

	// Export
	mux.HandleFunc("GET "+api+"/export/excel", rt.Exports.ExportInventory)

	// Dashboard
	mux.HandleFunc("GET "+api+"/dashboard", rt.Dashboard.GetDashboard)

	// Locally stored photos
	if rt.PhotoFiles != nil && strings.HasPrefix(rt.PhotoPrefix, "/") {
		prefix := strings.TrimRight(rt.PhotoPrefix, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, rt.PhotoFiles))
	}
}

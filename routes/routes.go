package routes

// Routes package cung cấp tất cả routing functions cho Listing Geo Service
//
// Cấu trúc:
// - api.go: API routes (/v1/*), health routes và middleware
// - routes.go: Package doc
//
// Sử dụng:
// routes.SetupAllRoutes(router, listingController, validateController)

package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Permission levels, in increasing order of capability.
const (
	PermissionReadonly = "readonly"
	PermissionEditor   = "editor"
	PermissionAdmin    = "admin"
)

// Part types.
const (
	PartTypePart     = "part"
	PartTypeAssembly = "assembly"
)

// Order statuses. An "open" order is the auto-routing target for new
// items from its vendor; "ordered" and "received" orders are committed
// and count toward the cost statistics.
const (
	OrderStatusOpen     = "open"
	OrderStatusOrdered  = "ordered"
	OrderStatusReceived = "received"
)

// DefaultPartStatus is the status every part starts in.
const DefaultPartStatus = "designing"

// PartStatuses maps each status value to its display label. The order
// of PartStatusList is the suggested workflow shown in the UI; nothing
// enforces transitions between statuses.
var PartStatuses = map[string]string{
	"designing":     "Design in progress",
	"material":      "Material needed",
	"ordered":       "Material ordered",
	"drawing":       "Drawing needed",
	"ready":         "Ready to manufacture",
	"cnc":           "Ready for CNC",
	"laser":         "Ready for laser",
	"lathe":         "Ready for lathe",
	"mill":          "Ready for mill",
	"printer":       "Ready for 3D printer",
	"router":        "Ready for router",
	"manufacturing": "Manufacturing in progress",
	"outsourced":    "Waiting for outsourced manufacturing",
	"welding":       "Waiting for welding",
	"scotchbrite":   "Waiting for Scotch-Brite",
	"anodize":       "Ready for anodize",
	"powder":        "Ready for powder coating",
	"coating":       "Waiting for coating",
	"assembly":      "Waiting for assembly",
	"done":          "Done",
}

var PartStatusList = []string{
	"designing", "material", "ordered", "drawing", "ready", "cnc", "laser",
	"lathe", "mill", "printer", "router", "manufacturing", "outsourced",
	"welding", "scotchbrite", "anodize", "powder", "coating", "assembly",
	"done",
}

// PartPriorities maps priority values to display labels.
var PartPriorities = map[int]string{
	0: "High",
	1: "Normal",
	2: "Low",
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

package schema

import "github.com/shiftlog/importer/internal/importer"

// Import targets for the field-service logging domain. Column keys match the
// destination table columns; labels match what supervisors see in exported
// spreadsheets, so auto-mapping usually lands on the first try.

func init() {
	Register(Target{
		Key:   "shift_logs",
		Label: "Shift Logs",
		Table: "shift_logs",
		Columns: []importer.ColumnDefinition{
			{Key: "employee", Label: "Employee", Required: true},
			{Key: "shift_date", Label: "Shift Date", Required: true, KeepText: true},
			{Key: "clock_in", Label: "Clock In", KeepText: true},
			{Key: "clock_out", Label: "Clock Out", KeepText: true},
			{Key: "hours", Label: "Hours"},
			{Key: "notes", Label: "Notes"},
		},
	})

	Register(Target{
		Key:   "plow_logs",
		Label: "Plow Work Logs",
		Table: "plow_logs",
		Columns: []importer.ColumnDefinition{
			{Key: "site", Label: "Site", Required: true},
			{Key: "operator", Label: "Operator", Required: true},
			{Key: "service_date", Label: "Service Date", Required: true, KeepText: true},
			{Key: "truck", Label: "Truck"},
			{Key: "passes", Label: "Passes"},
			{Key: "salt_tons", Label: "Salt Tons"},
			{Key: "notes", Label: "Notes"},
		},
	})

	Register(Target{
		Key:   "shovel_logs",
		Label: "Shovel Work Logs",
		Table: "shovel_logs",
		Columns: []importer.ColumnDefinition{
			{Key: "site", Label: "Site", Required: true},
			{Key: "crew", Label: "Crew", Required: true},
			{Key: "service_date", Label: "Service Date", Required: true, KeepText: true},
			{Key: "area_sqft", Label: "Area SqFt"},
			{Key: "deicer_bags", Label: "Deicer Bags"},
			{Key: "notes", Label: "Notes"},
		},
	})
}

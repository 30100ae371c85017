// Copyright (c) 2026 SkillHub. All rights reserved.

/*
Package location manages the service-area catalog and the per-browser
location selection.

The catalog is the list of areas the marketplace operates in, fetched from the
backend once at startup and shared read-mostly across requests. The selection
is which of those areas a given browser is shopping in; it is stored next to
the session record and survives logout.

Resolution ties the two together: a persisted selection wins while it still
names a catalog entry, otherwise the catalog's first area becomes the
selection. Views that scope their data by area consult the resolved selection
and skip the scoped fetch entirely when no area can be resolved.
*/
package location

import "encoding/json"

// Location is one service area of the marketplace.
type Location struct {
	LocationID int64  `json:"location_id"`
	City       string `json:"city"`
	Area       string `json:"area"`
}

// locationWire tolerates the upstream's two identifier spellings.
type locationWire struct {
	LocationID json.Number `json:"location_id"`
	ID         json.Number `json:"id"`
	City       string      `json:"city"`
	Area       string      `json:"area"`
}

// UnmarshalJSON accepts both "location_id" and "id" as the identifier, as
// number or string.
func (location *Location) UnmarshalJSON(data []byte) error {
	var wire locationWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	id := wire.LocationID
	if id == "" {
		id = wire.ID
	}
	parsed, _ := id.Int64()

	location.LocationID = parsed
	location.City = wire.City
	location.Area = wire.Area
	return nil
}

// Label renders the selection the way the site header displays it.
func (location Location) Label() string {
	if location.City == "" {
		return location.Area
	}
	if location.Area == "" {
		return location.City
	}
	return location.Area + ", " + location.City
}

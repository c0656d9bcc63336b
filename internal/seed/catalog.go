package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"hotelbooking/internal/pkg/validator"
)

// Catalog is the seed file content: facilities, hotels and their rooms.
type Catalog struct {
	Facilities []FacilitySeed `json:"facilities" validate:"dive"`
	Hotels     []HotelSeed    `json:"hotels" validate:"dive"`
}

type FacilitySeed struct {
	Title string `json:"title" validate:"required,notblank"`
}

type HotelSeed struct {
	Title    string     `json:"title" validate:"required,notblank,max=100"`
	Location string     `json:"location" validate:"required,notblank"`
	Rooms    []RoomSeed `json:"rooms" validate:"dive"`
}

type RoomSeed struct {
	Title       string   `json:"title" validate:"required,notblank"`
	Description *string  `json:"description"`
	Price       int      `json:"price" validate:"gt=0,lte=1000000000"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	Facilities  []string `json:"facilities"`
}

const (
	sheetFacilities = "Facilities"
	sheetHotels     = "Hotels"
	sheetRooms      = "Rooms"
)

// Load reads a .json or .xlsx seed file and validates it.
func Load(path string) (*Catalog, error) {
	var (
		c   *Catalog
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		c, err = loadJSON(path)
	case ".xlsx":
		c, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported seed file %q: want .json or .xlsx", path)
	}
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(c); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return c, nil
}

func loadJSON(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &c, nil
}

// loadXLSX expects three sheets:
//
//	Facilities: title
//	Hotels:     title | location
//	Rooms:      hotel | title | description | price | quantity | facilities (comma separated)
//
// The first row of every sheet is a header.
func loadXLSX(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	c := &Catalog{}

	facilities, err := sheetRows(f, sheetFacilities)
	if err != nil {
		return nil, err
	}
	for _, row := range facilities {
		if title := cell(row, 0); title != "" {
			c.Facilities = append(c.Facilities, FacilitySeed{Title: title})
		}
	}

	hotels, err := sheetRows(f, sheetHotels)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]int, len(hotels))
	for _, row := range hotels {
		title := cell(row, 0)
		if title == "" {
			continue
		}
		byTitle[strings.ToLower(title)] = len(c.Hotels)
		c.Hotels = append(c.Hotels, HotelSeed{Title: title, Location: cell(row, 1)})
	}

	rooms, err := sheetRows(f, sheetRooms)
	if err != nil {
		return nil, err
	}
	for i, row := range rooms {
		hotel := cell(row, 0)
		if hotel == "" {
			continue
		}
		idx, ok := byTitle[strings.ToLower(hotel)]
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown hotel %q", sheetRooms, i+2, hotel)
		}

		price, err := strconv.Atoi(cell(row, 3))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: price: %w", sheetRooms, i+2, err)
		}
		quantity, err := strconv.Atoi(cell(row, 4))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: quantity: %w", sheetRooms, i+2, err)
		}

		room := RoomSeed{Title: cell(row, 1), Price: price, Quantity: quantity}
		if d := cell(row, 2); d != "" {
			room.Description = &d
		}
		for _, name := range strings.Split(cell(row, 5), ",") {
			if name = strings.TrimSpace(name); name != "" {
				room.Facilities = append(room.Facilities, name)
			}
		}
		c.Hotels[idx].Rooms = append(c.Hotels[idx].Rooms, room)
	}

	return c, nil
}

// sheetRows returns the rows after the header; a missing sheet is empty.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

const catalogJSON = `{
  "facilities": [{"title": "Wi-Fi"}, {"title": "Парковка"}],
  "hotels": [
    {
      "title": "Апартаменты Brevis Rents",
      "location": "Сочи, ул. Орджоникидзе, д. 11/1",
      "rooms": [
        {"title": "Стандарт", "price": 4000, "quantity": 5, "facilities": ["wi-fi", "Кондиционер"]},
        {"title": "Люкс", "description": "Вид на море", "price": 9000, "quantity": 2}
      ]
    }
  ]
}`

func newManager(t *testing.T) *repository.Manager {
	t.Helper()
	db, err := database.Open("file:seed_"+t.Name()+"?mode=memory&cache=shared", database.Silent())
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repository.NewManager(db)
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	c, err := Load(writeFile(t, "catalog.json", catalogJSON))
	require.NoError(t, err)

	require.Len(t, c.Facilities, 2)
	require.Len(t, c.Hotels, 1)
	require.Len(t, c.Hotels[0].Rooms, 2)
	assert.Equal(t, "Вид на море", *c.Hotels[0].Rooms[1].Description)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeFile(t, "bad.json", `{"hotels":[{"title":" ","location":"Сочи"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "не может быть пустым")

	_, err = Load(writeFile(t, "catalog.csv", "title\n"))
	assert.Error(t, err)
}

func TestLoad_XLSX(t *testing.T) {
	f := excelize.NewFile()
	for _, s := range []string{sheetFacilities, sheetHotels, sheetRooms} {
		_, err := f.NewSheet(s)
		require.NoError(t, err)
	}
	require.NoError(t, f.SetSheetRow(sheetFacilities, "A1", &[]interface{}{"title"}))
	require.NoError(t, f.SetSheetRow(sheetFacilities, "A2", &[]interface{}{"Wi-Fi"}))
	require.NoError(t, f.SetSheetRow(sheetHotels, "A1", &[]interface{}{"title", "location"}))
	require.NoError(t, f.SetSheetRow(sheetHotels, "A2", &[]interface{}{"Grand", "Сочи"}))
	require.NoError(t, f.SetSheetRow(sheetRooms, "A1", &[]interface{}{"hotel", "title", "description", "price", "quantity", "facilities"}))
	require.NoError(t, f.SetSheetRow(sheetRooms, "A2", &[]interface{}{"grand", "Стандарт", "", 3500, 4, "Wi-Fi, Сейф"}))

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Hotels, 1)
	require.Len(t, c.Hotels[0].Rooms, 1)

	room := c.Hotels[0].Rooms[0]
	assert.Equal(t, 3500, room.Price)
	assert.Equal(t, 4, room.Quantity)
	assert.Nil(t, room.Description)
	assert.Equal(t, []string{"Wi-Fi", "Сейф"}, room.Facilities)
}

func TestApply_Idempotent(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	c, err := Load(writeFile(t, "catalog.json", catalogJSON))
	require.NoError(t, err)

	stats, err := Apply(ctx, m, c, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Stats{Facilities: 3, Hotels: 1, Rooms: 2}, stats)

	stats, err = Apply(ctx, m, c, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	hotels, err := m.Hotels.List(ctx, domain.HotelFilter{})
	require.NoError(t, err)
	require.Len(t, hotels, 1)

	rooms, err := m.Rooms.ListByHotel(ctx, hotels[0].ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	var titles []string
	for _, r := range rooms {
		for _, f := range r.Facilities {
			titles = append(titles, f.Title)
		}
	}
	assert.ElementsMatch(t, []string{"Wi-Fi", "Кондиционер"}, titles)
}

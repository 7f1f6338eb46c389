package handler

import (
    "testing"

    "github.com/davronbekm/silkroad-booking/internal/i18n"
    "github.com/davronbekm/silkroad-booking/internal/repository"
)

// TestCityIDForSlug covers the slug match used by the ?city filter.
func TestCityIDForSlug(t *testing.T) {
    cities := []repository.City{
        {ID: 1, Slug: "samarkand"},
        {ID: 2, Slug: "bukhara"},
        {ID: 3, Slug: "khiva"},
    }
    if id, ok := cityIDForSlug(cities, "bukhara"); !ok || id != 2 {
        t.Fatalf("cityIDForSlug(bukhara) = (%d, %v), want (2, true)", id, ok)
    }
    if id, ok := cityIDForSlug(cities, "Bukhara"); !ok || id != 2 {
        t.Fatalf("match should be case-insensitive, got (%d, %v)", id, ok)
    }
    if _, ok := cityIDForSlug(cities, "tashkent"); ok {
        t.Fatal("unknown slug should not match")
    }
    if _, ok := cityIDForSlug(nil, "samarkand"); ok {
        t.Fatal("empty city list should not match")
    }
}

// TestPublicTourFrom checks localization and the joined city summary.
func TestPublicTourFrom(t *testing.T) {
    tour := repository.Tour{
        ID:           7,
        Slug:         "silk-road-classic",
        Title:        i18n.NewText(map[i18n.Locale]string{i18n.LocaleEN: "Silk Road Classic", i18n.LocaleRU: "Классика Шёлкового пути"}),
        PriceCents:   125000,
        DurationDays: 5,
    }
    tour.CityID.Int64, tour.CityID.Valid = 2, true
    tour.CitySlug.String, tour.CitySlug.Valid = "bukhara", true
    tour.CityName = i18n.NewText(map[i18n.Locale]string{i18n.LocaleEN: "Bukhara", i18n.LocaleRU: "Бухара"})

    ru := publicTourFrom(tour, i18n.LocaleRU)
    if ru.Title != "Классика Шёлкового пути" {
        t.Fatalf("title not localized: %q", ru.Title)
    }
    if ru.City == nil || ru.City.Name != "Бухара" || ru.City.Slug != "bukhara" {
        t.Fatalf("unexpected city summary: %+v", ru.City)
    }
    if ru.Images == nil {
        t.Fatal("images must never be nil in responses")
    }

    tour.CityID.Valid = false
    tour.CitySlug.Valid = false
    en := publicTourFrom(tour, i18n.LocaleEN)
    if en.City != nil {
        t.Fatalf("detached tour should have no city, got %+v", en.City)
    }
    if en.Title != "Silk Road Classic" {
        t.Fatalf("unexpected en title: %q", en.Title)
    }
}

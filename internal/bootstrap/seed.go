package bootstrap

import (
	"log"

	"anoa.com/jelajahpath/internal/model"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Path{},
		&model.Point{},
		&model.UserPathProgress{},
		&model.PathVisit{},
		&model.UserItem{},
	)
}

// SeedDemoCatalog creates a small walkable catalog for development. Paths and
// points are otherwise owned by the admin collaborator.
func SeedDemoCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Path{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Catalog already seeded, skipping")
		return nil
	}

	paths := []model.Path{
		{
			Name:             "Kota Tua Heritage Walk",
			Description:      strPtr("Colonial-era landmarks around Fatahillah Square"),
			DistanceMeters:   2400,
			TotalTimeMinutes: 45,
			IsPublished:      true,
			Points: []model.Point{
				{
					Latitude:      -6.1352,
					Longitude:     106.8133,
					RadiusMeters:  50,
					Order:         1,
					LocationLabel: strPtr("Fatahillah Square"),
				},
				{
					Latitude:      -6.1377,
					Longitude:     106.8129,
					RadiusMeters:  30,
					Order:         2,
					RewardLabel:   strPtr("Bronze Coin"),
					RewardIconURL: strPtr("https://cdn.jelajahpath.id/icons/bronze-coin.png"),
					LocationLabel: strPtr("Wayang Museum"),
				},
				{
					Latitude:      -6.1375,
					Longitude:     106.8166,
					RadiusMeters:  50,
					Order:         3,
					RewardLabel:   strPtr("Heritage Badge"),
					RewardIconURL: strPtr("https://cdn.jelajahpath.id/icons/heritage-badge.png"),
					LocationLabel: strPtr("Kota Intan Drawbridge"),
				},
			},
		},
		{
			Name:             "Menteng Garden Loop",
			Description:      strPtr("Shaded parks and art-deco houses of Menteng"),
			DistanceMeters:   3600,
			TotalTimeMinutes: 60,
			IsPublished:      true,
			Points: []model.Point{
				{
					Latitude:      -6.1957,
					Longitude:     106.8293,
					RadiusMeters:  50,
					Order:         1,
					LocationLabel: strPtr("Taman Suropati"),
				},
				{
					Latitude:      -6.1989,
					Longitude:     106.8322,
					RadiusMeters:  40,
					Order:         2,
					RewardLabel:   strPtr("Garden Leaf"),
					LocationLabel: strPtr("Taman Situ Lembang"),
				},
			},
		},
		{
			Name:             "Harbor Draft Route",
			Description:      strPtr("Unpublished draft, not walkable yet"),
			DistanceMeters:   1800,
			TotalTimeMinutes: 30,
			IsPublished:      false,
			Points: []model.Point{
				{Latitude: -6.0945, Longitude: 106.8082, RadiusMeters: 50, Order: 1},
			},
		},
	}

	for i := range paths {
		if err := db.Create(&paths[i]).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Demo catalog seeded")
	return nil
}

// SeedDemoUsers creates a couple of walkers so the leaderboard has something
// to show in development.
func SeedDemoUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Users already seeded, skipping")
		return nil
	}

	users := []model.User{
		{Name: "Sari"},
		{Name: "Budi"},
		{Name: "Guest", IsAnonymous: true},
	}

	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Demo users seeded")
	return nil
}

func strPtr(s string) *string {
	return &s
}

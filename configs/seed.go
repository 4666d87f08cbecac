package configs

import (
	"log"

	"urbanserv/entity"
)

// SeedCatalog inserts sample rows when the catalog tables are empty, so a
// fresh install has something to browse.
func SeedCatalog() error {
	db := DB()

	var services int64
	if err := db.Model(&entity.Service{}).Count(&services).Error; err != nil {
		return err
	}
	if services == 0 {
		rows := []entity.Service{
			{Name: "Home Cleaning", Description: "Full house deep cleaning", Price: 450.00, Status: "active"},
			{Name: "Plumbing Repair", Description: "Leaks, taps and fittings", Price: 350.00, Status: "active"},
			{Name: "Electrical Work", Description: "Wiring and appliance installation", Price: 400.00, Status: "active"},
		}
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
		log.Println("seeded sample services")
	}

	var menu int64
	if err := db.Model(&entity.MenuItem{}).Count(&menu).Error; err != nil {
		return err
	}
	if menu == 0 {
		rows := []entity.MenuItem{
			{Name: "Paneer Butter Masala", Description: "With 4 butter rotis", Price: 220.00, Status: "active"},
			{Name: "Veg Thali", Description: "Dal, sabzi, rice, roti, sweet", Price: 180.00, Status: "active"},
			{Name: "Masala Dosa", Description: "With sambar and chutney", Price: 108.00, Status: "active"},
		}
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
		log.Println("seeded sample menu")
	}
	return nil
}

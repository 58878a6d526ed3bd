package storage

import (
	"github.com/tvqhuy/linhthu-arena/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database, keeps the schema updated via
// AutoMigrate and seeds species name rows from the config. Stats never live
// in the database; the config file is the single source of truth and is
// re-applied on every read.
func OpenAndMigrate(dataSourceName string, speciesFromConfig []game.Species) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&game.Species{}, &game.Combatant{}, &game.Battle{}, &game.Trainer{})
	if err != nil {
		return nil, err
	}

	seedSpecies(db, speciesFromConfig)
	return db, nil
}

// seedSpecies inserts one row per configured species when the table is
// empty. Only the name is persisted; new config entries are appended on
// later startups.
func seedSpecies(db *gorm.DB, speciesFromConfig []game.Species) {
	var existing []game.Species
	if err := db.Find(&existing).Error; err != nil {
		return
	}
	known := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		known[s.Name] = struct{}{}
	}
	toInsert := make([]game.Species, 0, len(speciesFromConfig))
	for _, s := range speciesFromConfig {
		if _, ok := known[s.Name]; !ok {
			toInsert = append(toInsert, game.Species{Name: s.Name})
		}
	}
	if len(toInsert) > 0 {
		db.Create(&toInsert)
	}
}

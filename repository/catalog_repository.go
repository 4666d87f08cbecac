package repository

import (
	"urbanserv/entity"

	"gorm.io/gorm"
)

const catalogActive = "active"

type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

func (r *CatalogRepository) GetService(id uint) (*entity.Service, error) {
	var s entity.Service
	if err := r.DB.Where("id = ? AND status = ?", id, catalogActive).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepository) GetMenuItem(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.Where("id = ? AND status = ?", id, catalogActive).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CatalogRepository) ListServices() ([]entity.Service, error) {
	var rows []entity.Service
	err := r.DB.Where("status = ?", catalogActive).Order("id").Find(&rows).Error
	return rows, err
}

func (r *CatalogRepository) ListMenu() ([]entity.MenuItem, error) {
	var rows []entity.MenuItem
	err := r.DB.Where("status = ?", catalogActive).Order("id").Find(&rows).Error
	return rows, err
}

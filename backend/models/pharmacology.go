package models

import "gorm.io/gorm"

type DrugClass struct {
	gorm.Model
	Name        string `gorm:"unique;not null"`
	Description string
	Drugs       []Drug
}

type Drug struct {
	gorm.Model
	DrugClassID       uint `gorm:"not null"`
	Name              string
	GenericName       string
	Description       string
	BrandNames        string // JSON array
	DosageForms       string // JSON array
	Indications       string
	Contraindications string
	SideEffects       string
}

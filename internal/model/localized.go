package model

// LocalizedText holds a bilingual English/Arabic text pair. It is embedded
// wherever user-facing content must exist in both languages, so validation
// and column layout stay uniform across entities.
type LocalizedText struct {
	En string `json:"en" gorm:"column:en"`
	Ar string `json:"ar" gorm:"column:ar"`
}

// Empty reports whether either language is missing.
func (t LocalizedText) Empty() bool {
	return t.En == "" || t.Ar == ""
}

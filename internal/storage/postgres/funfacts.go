package postgres

import (
	"github.com/nutrilog/nutrilog/internal/models"
)

func (s *Store) GetRandomFunFact() (models.FunFact, error) {
	row := s.db.QueryRow("SELECT id, fact_text FROM fun_facts ORDER BY RANDOM() LIMIT 1")

	var f models.FunFact
	if err := row.Scan(&f.ID, &f.Text); err != nil {
		return models.FunFact{}, err
	}
	return f, nil
}

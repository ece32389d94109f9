package models

import "time"

// Plan представляет тренировочный план, опубликованный тренером.
// Имя тренера денормализовано: снимок делается в момент создания плана,
// чтобы не делать join при каждом чтении каталога. Последующее изменение
// имени тренера в плане не отражается — осознанный компромисс.
type Plan struct {
	ID           string    `json:"id"`            // Уникальный идентификатор плана
	TrainerUID   string    `json:"trainer_uid"`   // Идентификатор тренера-владельца
	TrainerName  string    `json:"trainer_name"`  // Имя тренера на момент создания
	Title        string    `json:"title"`         // Название плана
	Description  string    `json:"description"`   // Описание плана
	Price        float64   `json:"price"`         // Цена (>= 0)
	DurationDays int       `json:"duration_days"` // Длительность в днях (> 0)
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"` // Время создания
}

// DummyPlan используется для приёма данных плана из JSON-запроса
// до их валидации и преобразования в Plan.
type DummyPlan struct {
	Title               string   `json:"title" validate:"required,min=3,max=120"`  // Название плана
	Description         string   `json:"description" validate:"max=5000"`          // Описание (опционально при генерации)
	Price               float64  `json:"price" validate:"gte=0"`                   // Цена (>= 0)
	DurationDays        int      `json:"duration_days" validate:"required,gt=0"`   // Длительность в днях
	Tags                []string `json:"tags,omitempty" validate:"max=10"`         // Теги (опционально)
	GenerateDescription bool     `json:"generate_description,omitempty"`           // Сгенерировать описание через AI-ассистента
}

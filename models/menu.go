package models

// MenuItem is one orderable item on the menu.
type MenuItem struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description,omitempty"`
	Price       float64 `yaml:"price" json:"price"`
	Image       string  `yaml:"image" json:"image,omitempty"`
	Popular     bool    `yaml:"popular" json:"popular,omitempty"`
}

// MenuCategory groups menu items. Category order is the authored order and is
// significant for catalog resolution.
type MenuCategory struct {
	Key   string     `yaml:"key" json:"key"`
	Name  string     `yaml:"name" json:"name"`
	Items []MenuItem `yaml:"items" json:"items"`
}

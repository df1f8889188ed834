package data

// ObjectDefinition describes a kind of interactable world object.
type ObjectDefinition struct {
	ID          int32    `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	MenuActions []string `yaml:"menu_actions"` // "" = hole
	Width       int32    `yaml:"width"`
	Length      int32    `yaml:"length"`
	Solid       bool     `yaml:"solid"`
}

func (d ObjectDefinition) DefinitionID() int32 { return d.ID }

// HasAction reports whether option indexes a non-empty menu action.
func (d ObjectDefinition) HasAction(option int) bool {
	return hasEntry(d.MenuActions, option)
}

// NpcDefinition describes a kind of NPC.
type NpcDefinition struct {
	ID                 int32    `yaml:"id"`
	Name               string   `yaml:"name"`
	InteractionOptions []string `yaml:"interaction_options"` // "" = hole
	Size               int32    `yaml:"size"`
	CombatLevel        int32    `yaml:"combat_level"`
}

func (d NpcDefinition) DefinitionID() int32 { return d.ID }

// HasOption reports whether option indexes a non-empty interaction option.
func (d NpcDefinition) HasOption(option int) bool {
	return hasEntry(d.InteractionOptions, option)
}

// ItemDefinition describes a kind of item.
type ItemDefinition struct {
	ID            int32    `yaml:"id"`
	Name          string   `yaml:"name"`
	GroundActions []string `yaml:"ground_actions"`
	Stackable     bool     `yaml:"stackable"`
	Members       bool     `yaml:"members"`
}

func (d ItemDefinition) DefinitionID() int32 { return d.ID }

func hasEntry(list []string, i int) bool {
	return i >= 0 && i < len(list) && list[i] != ""
}

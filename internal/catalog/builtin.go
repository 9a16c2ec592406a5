package catalog

import (
	"fmt"
	"time"

	"github.com/zjrosen/choicekit/internal/choices"
)

// Shade is the composite value of the Color set.
type Shade struct {
	Code        int
	Description string
	Bright      bool
}

func (s Shade) String() string {
	return fmt.Sprintf("%d:%s:%t", s.Code, s.Description, s.Bright)
}

// Grade is the composite value of the Tier set.
type Grade struct {
	Code        string
	Description string
	Index       int
}

func (g Grade) String() string {
	return fmt.Sprintf("%s:%s:%d", g.Code, g.Description, g.Index)
}

// Date is a calendar day without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Built-in sets. Definitions are checked at package init; a broken
// definition panics before main runs.
var (
	Level = choices.NewBuilder[string]("Level").
		Add("FRESHMAN", "FR", "大一新生").
		Add("SOPHOMORE", "SO", "大二").
		Add("JUNIOR", "JR", "初级").
		Add("SENIOR", "SR", "高级").
		Add("GRADUATE", "GR", "毕业生").
		MustBuild()

	// Region has no explicit labels; they derive from the names.
	Region = choices.NewBuilder[string]("Region").
		Add("HB", "华北", "").
		Add("HN", "华南", "").
		Add("HD", "华东", "").
		Add("HZ", "华中", "").
		MustBuild()

	Suit = choices.NewBuilder[int]("Suit").
		Add("DIAMOND", 1, "").
		Add("SPADE", 2, "").
		Add("HEART", 3, "").
		Add("CLUB", 4, "").
		MustBuild()

	Answer = choices.NewBuilder[int]("Answer").
		Add("NO", 0, "No").
		Add("YES", 1, "Yes").
		Empty("(Unknown)").
		MustBuild()

	Fruit = choices.NewBuilder[int]("Fruit").
		Add("APPLE", 1, "苹果").
		Add("PEACH", 2, "桃子").
		Add("ORANGE", 3, "橘子").
		MustBuild()

	CategoryType = choices.NewBuilder[string]("CategoryType").
		Add("KP", "K", "科普").
		Add("SW", "S", "散文").
		Add("XS", "X", "小说").
		Add("YX", "Y", "游戏").
		MustBuild()

	Gender = choices.NewBuilder[string]("Gender").
		Add("MALE", "M", "Male").
		Add("FEMALE", "F", "Female").
		Add("OTHER", "O", "Other").
		MustBuild()

	// Language stores the symbolic name as the value.
	Language = choices.NewBuilder[string]("Language").
		Add("DE", "DE", "German").
		Add("EN", "EN", "English").
		Add("CN", "CN", "Chinese").
		Add("ES", "ES", "Spanish").
		MustBuild()

	Priority = choices.NewBuilder[string]("Priority").
		Add("LOW", "L", "Low").
		Add("MEDIUM", "M", "Medium").
		Add("HIGH", "H", "High").
		MustBuild()

	MedalType = must(choices.TextChoices("MedalType", "GOLD SILVER BRONZE"))

	Place = must(choices.IntegerChoices("Place", "FIRST SECOND THIRD"))

	Status = choices.NewBuilder[string]("Status").
		Add("ACTIVE", "A", "活动").
		Add("INACTIVE", "I", "未激活").
		Add("DELETED", "D", "删除").
		MustBuild()

	OpenMode = choices.NewBuilder[int]("OpenMode").
		Add("READ", 1, "read a b").
		Add("WRITE", 2, "write c d").
		MustBuild()

	Color = choices.NewBuilder[Shade]("Color").
		Add("RED", Shade{1, "Red", true}, "Red").
		Add("GREEN", Shade{2, "Green", false}, "Green").
		Add("BLUE", Shade{3, "Blue", true}, "Blue").
		MustBuild()

	Tier = choices.NewBuilder[Grade]("Tier").
		Add("LOW", Grade{"L", "Low", 1}, "Low").
		Add("MEDIUM", Grade{"M", "Medium", 2}, "Medium").
		Add("HIGH", Grade{"H", "High", 3}, "High").
		MustBuild()

	MoonLanding = choices.NewBuilder[Date]("MoonLanding").
		Add("APOLLO_11", Date{1969, time.July, 20}, "Apollo 11 (Eagle)").
		Add("APOLLO_12", Date{1969, time.November, 19}, "Apollo 12 (Intrepid)").
		Add("APOLLO_14", Date{1971, time.February, 5}, "Apollo 14 (Antares)").
		Add("APOLLO_15", Date{1971, time.July, 30}, "Apollo 15 (Falcon)").
		Add("APOLLO_16", Date{1972, time.April, 21}, "Apollo 16 (Orion)").
		Add("APOLLO_17", Date{1972, time.December, 11}, "Apollo 17 (Challenger)").
		MustBuild()
)

func must[V comparable](s *choices.Set[V], err error) *choices.Set[V] {
	if err != nil {
		panic(err)
	}
	return s
}

// builtins lists the built-in sets in catalog order.
func builtins() []choices.Describer {
	return []choices.Describer{
		Level, Region, Suit, Answer, Fruit, CategoryType, Gender, Language,
		Priority, MedalType, Place, Status, OpenMode, Color, Tier, MoonLanding,
	}
}

// Builtin returns a new catalog holding the built-in sets.
func Builtin() *Catalog {
	c := New()
	for _, s := range builtins() {
		// Built-in names are distinct; Add cannot fail here.
		_ = c.Add(s)
	}
	return c
}

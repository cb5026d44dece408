package data

import "time"

type Settings struct {
	ID          string       `json:"_id"`
	Intentions  []Intention  `json:"intentions"`
	Disciplines []Discipline `json:"disciplines"`
}

type Image struct {
	ID       string `json:"_id"`
	FileName string `json:"fileName"`
	Image    []byte `json:"image"`
}

type MonitorItem struct {
	ID      string `json:"_id"`
	Value   string `json:"value"`
	Created Time   `json:"created"`
}

func NewMonitorItem(id string, now time.Time) MonitorItem {
	return MonitorItem{ID: id, Value: "monitor", Created: At(now)}
}

// DefaultSettings is inserted the first time settings are requested.
func DefaultSettings(id string) *Settings {
	return &Settings{
		ID:          id,
		Intentions:  DefaultIntentions(),
		Disciplines: DefaultDisciplines(),
	}
}

func DefaultIntentions() []Intention {
	return []Intention{
		{Title: "Wellbeing", Description: "This is the wish for Restoration of the optimal state of the receiver, at any level the sender wishes- physical, emotional, mental, energetic, or spiritual. Covers anything from a simple physical injury to soul wounds."},
		{Title: "Harmony", Description: "Harmony contains the aspiration towards peace, but activates and uplifts it. This is understood to contain all possibilities for peace and both Inner and Outer, from personal to interpersonal to international."},
		{Title: "Freedom", Description: "This is the ideal human condition unrestricted, and includes both “freedom TO” and “freedom FROM”. Freedom to think, express, move, act. Freedom from suffering, censorship,oppression, imprisonment, addiction."},
		{Title: "Empowerment", Description: "People want to feel capable, confident, and free to do as they truly desire, and not to do as they don’t. This includes simple profound power of yes and of no."},
		{Title: "Resolution", Description: "Similar to peace, but with a felt sense of positive completion. Resolution of challenging situations, conflicts, disagreements, misunderstanding, and internal personal issues and experiences."},
		{Title: "Empathy", Description: "We are inherently and fundamentally connected to one another. Joys are grown, and burdens lightened, through sharing."},
		{Title: "Abundance", Description: "Abundance can be understood as an internal experience of deep sufficiency, or in a more mundane outward sense as what we call “wealth”. Many people with great material worth live an experience of internal poverty and hunger for more. Others have very little outwardly and experience themselves as having plenty. Enough to take great care of oneself and those one loves?"},
		{Title: "Love", Description: "Whether romantic, familial, or unconditional, this embodies one of the greatest sources of basic human joy as well as one of our highest possible aspirations. We do our best to maximize heartfelt appreciation and to minimize judgement."},
		{Title: "Celebration", Description: "Everyone wants these things and feels great when extending them to or sharing them with others. Can be for achievements and milestones of any size. Births, birthday, graduation, promotion, wedding, anniversary, completion."},
		{Title: "Transformation", Description: "The only constant in life is change. How we handle change is one of the most powerful factors in our experience of life. Let’s help one another do our best."},
	}
}

func DefaultDisciplines() []Discipline {
	return []Discipline{
		{Title: "Readings", Description: "Astrology, tarot, psychic, iridology"},
		{Title: "Meditation", Description: "Sitting, walking, mantra, moving, healing, visualization"},
		{Title: "Wellness", Description: "Chiropractic, osteopathic, massage, energy, healing, attunement"},
		{Title: "Movement", Description: "Dance, feldenkreis, contact improv, 5 rhythms, ecstatic, mevlevi"},
		{Title: "Martial arts", Description: "Tai chi, qigong, aikido, karate, tae kwon do, krav maga"},
		{Title: "Physical exercise", Description: "Running, yoga, crossfit, pilates, weight-training"},
		{Title: "Creative expression", Description: "Singing, music making/listening, drawing, art, painting, dance, writing"},
		{Title: "Outdoor activity", Description: "Hiking, biking, surfing, kite-surfing, river-tracing, bouldering, rock-climbing"},
		{Title: "Personal growth", Description: "Therapy, coaching, goal-setting, leadership training"},
		{Title: "Meals", Description: "Individual, family, social, special occasion, date, holiday, fasting"},
	}
}

// DevGeolocations are the places generated practitioners are put in.
var DevGeolocations = []Geolocation{
	{Latitude: 55.6044973, Longitude: 13.005021},                  // Malmö, Kollektiva
	{Latitude: 55.5897248, Longitude: 12.992067},                  // Malmö, Triangeln
	{Latitude: 55.656372399999995, Longitude: 13.369866799999999}, // Björnstorp
	{Latitude: -33.8632658, Longitude: 151.2285838},               // Sydney Opera House
	{Latitude: 40.7493302, Longitude: -73.9898485},                // Empire State Building
}

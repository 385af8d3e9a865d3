// Package seed produces employee collections for local databases.
package seed

import (
	"math/rand/v2"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/tamathecxder/randomail"
)

// DemoEmployees returns the seven employees the dashboard ships with.
func DemoEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: 1, Name: "نواف العتيبي", Email: "nawaf@gmail.com", Department: "d", SunTue: true, WedThu: true, Shift: "7am-3pm", Score: 90, Total: 120, Done: 110},
		{ID: 2, Name: "نواف خالد", Email: "nawaf22@gmail.com", Department: "e", SunTue: true, Shift: "10am-6pm", Score: 75, Total: 64, Done: 50},
		{ID: 3, Name: "سارة المطيري", Email: "sara.m@org.sa", Department: "f", WedThu: true, Shift: "7am-3pm", Score: 88, Total: 70, Done: 66},
		{ID: 4, Name: "عبدالله الشهري", Email: "abdullah.sh@org.sa", Department: "md", WedThu: true, FriSat: true, Shift: "10am-6pm", Score: 82, Total: 95, Done: 80},
		{ID: 5, Name: "ريم الأحمد", Email: "reem.ah@org.sa", Department: "d", SunTue: true, FriSat: true, Shift: "11am-2pm", Score: 92, Total: 40, Done: 36},
		{ID: 6, Name: "ياسر الحربي", Email: "yasser@org.sa", Department: "e", FriSat: true, Shift: "10am-6pm", Score: 70, Total: 30, Done: 18},
		{ID: 7, Name: "نورة الدوسري", Email: "nora@org.sa", Department: "f", SunTue: true, WedThu: true, Shift: "7am-3pm", Score: 95, Total: 150, Done: 148},
	}
}

var firstNames = []string{
	"نواف", "سارة", "عبدالله", "ريم", "ياسر", "نورة", "خالد", "هند",
	"فهد", "لمى", "سلمان", "جود", "تركي", "منيرة", "ماجد", "دانة",
}

var familyNames = []string{
	"العتيبي", "المطيري", "الشهري", "الأحمد", "الحربي", "الدوسري",
	"القحطاني", "الزهراني", "الغامدي", "الشمري", "العنزي", "السبيعي",
}

var shifts = []string{"7am-3pm", "10am-6pm", "11am-2pm"}

// Generator builds random employees. A fixed seed gives a fixed sequence.
type Generator struct {
	rng   *rand.Rand
	email func() string
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		email: randomail.GenerateRandomEmail,
	}
}

func (g *Generator) Name() string {
	return firstNames[g.rng.IntN(len(firstNames))] + " " + familyNames[g.rng.IntN(len(familyNames))]
}

// Employee returns a random employee with the given id. Done never exceeds Total.
func (g *Generator) Employee(id int64) domain.Employee {
	total := g.rng.IntN(151)
	return domain.Employee{
		ID:         id,
		Name:       g.Name(),
		Email:      g.email(),
		Department: domain.KnownDepartments[g.rng.IntN(len(domain.KnownDepartments))],
		Shift:      shifts[g.rng.IntN(len(shifts))],
		Score:      50 + g.rng.IntN(51),
		Total:      total,
		Done:       g.rng.IntN(total + 1),
		SunTue:     g.rng.IntN(2) == 1,
		WedThu:     g.rng.IntN(2) == 1,
		FriSat:     g.rng.IntN(2) == 1,
	}
}

// Append adds n random employees after existing, continuing the id sequence.
func (g *Generator) Append(existing []domain.Employee, n int) []domain.Employee {
	out := make([]domain.Employee, 0, len(existing)+max(n, 0))
	out = append(out, existing...)

	next := int64(1)
	for _, e := range existing {
		if e.ID >= next {
			next = e.ID + 1
		}
	}

	for i := 0; i < n; i++ {
		out = append(out, g.Employee(next))
		next++
	}
	return out
}

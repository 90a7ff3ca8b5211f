// Package seed populates the registries with deterministic demo data for
// development environments.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ancare/ancare/internal/domain/anc"
	"github.com/ancare/ancare/internal/domain/delivery"
	"github.com/ancare/ancare/internal/domain/staff"
	"github.com/ancare/ancare/pkg/clinical"
)

// Config controls how much demo data is generated.
type Config struct {
	Patients   int
	Doctors    int
	Nurses     int
	Deliveries int
	// Seed fixes the RNG so repeated runs produce identical data.
	Seed int64
}

// DefaultConfig mirrors a small but busy clinic.
func DefaultConfig() Config {
	return Config{
		Patients:   15,
		Doctors:    8,
		Nurses:     12,
		Deliveries: 8,
		Seed:       1,
	}
}

// Result reports what was created.
type Result struct {
	Patients   int
	Doctors    int
	Nurses     int
	Deliveries int
}

var (
	firstNames = []string{
		"Amina", "Fatima", "Jane", "Grace", "Halima", "Mary", "Zainab",
		"Esther", "Khadija", "Lucy", "Naomi", "Salma", "Ruth", "Mariam", "Joy",
	}
	lastNames = []string{
		"Hassan", "Doe", "Njeri", "Said", "Omar", "Wanjiku", "Ali",
		"Kamau", "Yusuf", "Achieng", "Mohamed", "Otieno", "Abdi", "Mwangi", "Juma",
	}
	nationalities = []string{"Kenyan", "Somali", "Ugandan", "Tanzanian", "Ethiopian"}
	specialties   = []string{"Obstetrics", "Gynecology", "Maternal-Fetal Medicine", "General Practice"}
	departments   = []string{"Maternity", "Labor Ward", "Postnatal", "Antenatal Clinic"}
	shifts        = []staff.Shift{staff.ShiftMorning, staff.ShiftEvening, staff.ShiftNight}
	deliveryTypes = []delivery.Type{delivery.TypeNormal, delivery.TypeNormal, delivery.TypeCesarean, delivery.TypeAssisted}
	genders       = []delivery.BabyGender{delivery.GenderFemale, delivery.GenderMale}
	conditions    = []string{"anemia", "gestational diabetes", "hypertension", "asthma"}
	allergies     = []string{"penicillin", "sulfa", "latex"}
	occupations   = []string{"teacher", "trader", "farmer", "nurse", "accountant"}
	complications = []string{"prolonged labor", "postpartum hemorrhage", "perineal tear", "cord prolapse"}
)

// pick returns a random, possibly empty, subset of up to two items.
func pick(rng *rand.Rand, pool []string) []string {
	n := rng.Intn(3)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pool[rng.Intn(len(pool))])
	}
	return out
}

// Seeder writes demo data through the real services so every invariant
// and derivation applies to seeded records too.
type Seeder struct {
	patients *anc.Service
	roster   *staff.Service
	linker   *delivery.Linker
}

func NewSeeder(patients *anc.Service, roster *staff.Service, linker *delivery.Linker) *Seeder {
	return &Seeder{patients: patients, roster: roster, linker: linker}
}

// Run generates the configured data. Deliveries go through the linker
// workflow so each record carries a true patient snapshot.
func (s *Seeder) Run(cfg Config) (Result, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	var res Result

	for i := 0; i < cfg.Doctors; i++ {
		last := lastNames[rng.Intn(len(lastNames))]
		_, err := s.roster.AddDoctor(staff.Doctor{
			Name:       "Dr. " + firstNames[rng.Intn(len(firstNames))] + " " + last,
			Specialty:  specialties[rng.Intn(len(specialties))],
			Phone:      fmt.Sprintf("+2547%08d", rng.Intn(100000000)),
			Email:      fmt.Sprintf("dr.%s%d@ancare.example", strings.ToLower(last), i+1),
			Experience: 2 + rng.Intn(24),
			Available:  rng.Intn(4) != 0,
		})
		if err != nil {
			return res, fmt.Errorf("seed doctor %d: %w", i, err)
		}
		res.Doctors++
	}

	for i := 0; i < cfg.Nurses; i++ {
		last := lastNames[rng.Intn(len(lastNames))]
		_, err := s.roster.AddNurse(staff.Nurse{
			Name:       firstNames[rng.Intn(len(firstNames))] + " " + last,
			Department: departments[rng.Intn(len(departments))],
			Shift:      shifts[rng.Intn(len(shifts))],
			Phone:      fmt.Sprintf("+2547%08d", rng.Intn(100000000)),
			Email:      fmt.Sprintf("nurse.%s%d@ancare.example", strings.ToLower(last), i+1),
			Experience: 1 + rng.Intn(20),
			Available:  rng.Intn(4) != 0,
		})
		if err != nil {
			return res, fmt.Errorf("seed nurse %d: %w", i, err)
		}
		res.Nurses++
	}

	fileNumbers := make([]string, 0, cfg.Patients)
	for i := 0; i < cfg.Patients; i++ {
		fn := fmt.Sprintf("ANC%04d", i+1)
		score := rng.Intn(100)
		cat := clinical.CategoryForScore(score)
		_, err := s.patients.Register(anc.Patient{
			FileNumber:   fn,
			Name:         firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
			Nationality:  nationalities[rng.Intn(len(nationalities))],
			Age:          20 + rng.Intn(16),
			WeightKg:     50 + float64(rng.Intn(41)),
			HeightCm:     150 + float64(rng.Intn(31)),
			Phone:        fmt.Sprintf("+2547%08d", rng.Intn(100000000)),
			TypeOfVisit:  visitType(rng),
			RiskScore:    &score,
			RiskCategory: &cat,
			VitalSigns: &anc.VitalSigns{
				BloodPressure: fmt.Sprintf("%d/%d", 100+rng.Intn(40), 60+rng.Intn(30)),
				Pulse:         60 + rng.Intn(40),
				Temperature:   36.2 + rng.Float64()*1.3,
				Oxygen:        95 + rng.Intn(5),
				LastUpdated:   time.Now().UTC(),
			},
			MedicalHistory: &anc.MedicalHistory{
				Conditions:          pick(rng, conditions),
				Allergies:           pick(rng, allergies),
				PreviousPregnancies: rng.Intn(4),
			},
			SocialHistory: &anc.SocialHistory{
				SmokingStatus: "never",
				AlcoholUse:    "none",
				Occupation:    occupations[rng.Intn(len(occupations))],
			},
		})
		if err != nil {
			return res, fmt.Errorf("seed patient %s: %w", fn, err)
		}
		fileNumbers = append(fileNumbers, fn)
		res.Patients++
	}

	for i := 0; i < cfg.Deliveries && len(fileNumbers) > 0; i++ {
		fn := fileNumbers[rng.Intn(len(fileNumbers))]
		sess := s.linker.Start()
		if _, err := s.linker.Lookup(sess.ID, fn); err != nil {
			return res, fmt.Errorf("seed delivery lookup %s: %w", fn, err)
		}
		_, err := s.linker.Submit(sess.ID, delivery.Details{
			DeliveryDate:  time.Now().UTC().AddDate(0, 0, -rng.Intn(90)),
			DeliveryType:  deliveryTypes[rng.Intn(len(deliveryTypes))],
			BabyWeightKg:  2.5 + rng.Float64()*1.5,
			BabyGender:    genders[rng.Intn(len(genders))],
			ApgarScore:    7 + rng.Intn(4),
			Complications: pick(rng, complications),
		})
		if err != nil {
			return res, fmt.Errorf("seed delivery for %s: %w", fn, err)
		}
		res.Deliveries++
	}

	log.Info().
		Int("patients", res.Patients).
		Int("doctors", res.Doctors).
		Int("nurses", res.Nurses).
		Int("deliveries", res.Deliveries).
		Msg("demo data seeded")
	return res, nil
}

func visitType(rng *rand.Rand) anc.VisitType {
	if rng.Intn(2) == 0 {
		return anc.VisitScreening
	}
	return anc.VisitFollowUp
}

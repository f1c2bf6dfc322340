package devserver

import (
	"time"

	"github.com/uni-jay/ican-portal/internal/client/models"
)

const (
	DemoEmail    = "demo@ican.ng"
	DemoPassword = "demo1234"
)

// Seed fills s with the event, CPD and election catalogues. With demo set it
// also creates a funded demo member (DemoEmail / DemoPassword).
func Seed(s *Store, demo bool) error {
	base := s.now().Truncate(24 * time.Hour)

	s.mu.Lock()
	s.events = []models.Event{
		{ID: "ev-agm", Title: "Annual General Meeting", Location: "Lagos", StartsAt: base.Add(30*24*time.Hour + 10*time.Hour), CPDCredits: 2},
		{ID: "ev-conf", Title: "Annual Accountants Conference", Location: "Abuja", StartsAt: base.Add(60*24*time.Hour + 9*time.Hour), Fee: 75000, CPDCredits: 15,
			Description: "Three days of technical sessions and networking."},
		{ID: "ev-ifrs", Title: "IFRS 18 Webinar", Location: "Online", StartsAt: base.Add(7*24*time.Hour + 14*time.Hour), Fee: 5000, CPDCredits: 3},
	}
	s.modules = []models.CPDModule{
		{ID: "cpd-ethics", Title: "Professional Ethics", Credits: 5},
		{ID: "cpd-tax", Title: "Finance Act Update", Credits: 4},
		{ID: "cpd-audit", Title: "Audit Quality and ISA 220", Credits: 6},
	}
	s.elections = []models.Election{
		{ID: "el-council", Title: "Council Election", Open: true, Candidates: []models.Candidate{
			{ID: "c-1", Name: "Adaeze Okafor", Position: "Council Member"},
			{ID: "c-2", Name: "Tunde Balogun", Position: "Council Member"},
		}},
		{ID: "el-district", Title: "District Society Chair", Open: false, Candidates: []models.Candidate{
			{ID: "c-3", Name: "Ngozi Eze", Position: "Chair"},
		}},
	}
	s.mu.Unlock()

	if !demo {
		return nil
	}
	u, err := s.CreateUser(models.RegisterData{
		Name: "Demo Member", Email: DemoEmail, Password: DemoPassword, Phone: "+2348030000000", MembershipID: "ICAN000001",
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[u.ID]
	acc.user.MembershipTier = "Fellow"
	acc.user.Points = 120
	s.addTransaction(acc, models.Transaction{Type: "credit", Amount: 100000, Description: "Wallet top-up"})
	s.progress[u.ID] = map[string]int{"cpd-ethics": 100, "cpd-tax": 40}
	return nil
}

package meals

import "testing"

func TestForGoal(t *testing.T) {
	for _, g := range []Goal{GoalCutting, GoalMaintenance, GoalBulking} {
		p, ok := ForGoal(g)
		if !ok {
			t.Fatalf("ForGoal(%q) not found", g)
		}
		if p.Goal != g {
			t.Fatalf("plan goal = %q, want %q", p.Goal, g)
		}
		if len(p.Breakfast) == 0 || len(p.Lunch) == 0 || len(p.Dinner) == 0 || len(p.Snacks) == 0 {
			t.Fatalf("plan for %q has empty sections", g)
		}
	}
}

func TestForGoal_Unknown(t *testing.T) {
	if _, ok := ForGoal(Goal("keto")); ok {
		t.Fatalf("unexpected plan for unknown goal")
	}
}

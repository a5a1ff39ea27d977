package stats

import (
	"math"
	"testing"
)

func TestFTestPValue_CriticalValue(t *testing.T) {
	d := NewDistributions()

	// F(0.95; 2, 12) = 3.885 from standard tables.
	p := d.FTestPValue(3.885, 2, 12)
	if math.Abs(p-0.05) > 0.001 {
		t.Errorf("p-value at F critical = %v, want ~0.05", p)
	}

	if p := d.FTestPValue(0, 2, 12); math.Abs(p-1.0) > 1e-12 {
		t.Errorf("p-value at F=0 = %v, want 1", p)
	}
	if p := d.FTestPValue(5.0, 0, 12); p != 1.0 {
		t.Errorf("invalid df should give p=1, got %v", p)
	}
}

func TestStudentizedRangeCDF_AgainstTables(t *testing.T) {
	d := NewDistributions()

	// Upper 5% points of the studentized range from standard tables.
	cases := []struct {
		q  float64
		k  int
		df int
	}{
		{3.77, 3, 12}, // q(0.05; 3, 12)
		{3.08, 2, 12}, // q(0.05; 2, 12)
		{3.96, 4, 20}, // q(0.05; 4, 20)
		{3.98, 5, 60}, // q(0.05; 5, 60)
	}

	for _, c := range cases {
		p := d.TukeyPValue(c.q, c.k, c.df)
		if math.Abs(p-0.05) > 0.003 {
			t.Errorf("TukeyPValue(%v, %d, %d) = %v, want ~0.05", c.q, c.k, c.df, p)
		}
	}
}

func TestStudentizedRangeCDF_TwoGroupsMatchesT(t *testing.T) {
	d := NewDistributions()

	// With k=2 the studentized range is sqrt(2)*|t|, so q at the two-sided
	// t critical value t(0.975; 12) = 2.179 gives p = 0.05.
	q := math.Sqrt2 * 2.179
	p := d.TukeyPValue(q, 2, 12)
	if math.Abs(p-0.05) > 0.002 {
		t.Errorf("two-group Tukey p = %v, want ~0.05", p)
	}
}

func TestStudentizedRangeCDF_Bounds(t *testing.T) {
	d := NewDistributions()

	if p := d.StudentizedRangeCDF(0, 3, 10); p != 0 {
		t.Errorf("CDF at q=0 = %v, want 0", p)
	}
	if p := d.StudentizedRangeCDF(100, 3, 10); math.Abs(p-1) > 1e-6 {
		t.Errorf("CDF at q=100 = %v, want ~1", p)
	}
	// Monotone in q.
	p1 := d.StudentizedRangeCDF(2, 4, 15)
	p2 := d.StudentizedRangeCDF(3, 4, 15)
	if p2 <= p1 {
		t.Errorf("CDF not monotone: CDF(2)=%v CDF(3)=%v", p1, p2)
	}
}

func TestRangeCDF_TwoNormals(t *testing.T) {
	// For k=2 the range of two standard normals has
	// P(R <= r) = 2*Phi(r/sqrt(2)) - 1; at r = 1.96*sqrt(2) that is 0.95.
	p := rangeCDF(1.959964*math.Sqrt2, 2)
	if math.Abs(p-0.95) > 1e-4 {
		t.Errorf("rangeCDF = %v, want 0.95", p)
	}
}

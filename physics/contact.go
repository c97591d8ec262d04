package physics

import "github.com/jakecoffman/cp"

// fixtureCollisionType tags every fixture shape so a single handler sees all
// contact pairs.
const fixtureCollisionType cp.CollisionType = 1

// restitutionThreshold is the approach speed in m/s below which contacts do
// not bounce.
const restitutionThreshold = 1.0

// approach holds the normal relative velocity of each contact point before
// the solver runs.
type approach struct {
	count int
	vn    [cp.MAX_CONTACTS_PER_ARBITER]float64
}

// installContactHandler mixes restitution as max(a, b). Engine elasticity
// stays at zero, so the solver ends with no normal approach velocity, and the
// bounce impulse is applied per contact point afterwards.
func (w *World) installContactHandler() {
	h := w.space.NewCollisionHandler(fixtureCollisionType, fixtureCollisionType)
	h.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		recordApproach(arb)
		return true
	}
	h.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		applyRestitution(arb)
	}
}

func recordApproach(arb *cp.Arbiter) {
	set := arb.ContactPointSet()
	a, b := arb.Bodies()
	ap := &approach{count: set.Count}
	for i := 0; i < set.Count; i++ {
		ap.vn[i] = normalVelocity(a, b, contactPoint(set, i), set.Normal)
	}
	arb.UserData = ap
}

func applyRestitution(arb *cp.Arbiter) {
	ap, ok := arb.UserData.(*approach)
	arb.UserData = nil
	if !ok {
		return
	}

	sa, sb := arb.Shapes()
	e := max(restitutionOf(sa), restitutionOf(sb))
	if e == 0 || arb.TotalImpulse().LengthSq() == 0 {
		return
	}

	set := arb.ContactPointSet()
	a, b := arb.Bodies()
	n := set.Normal
	for i := 0; i < set.Count && i < ap.count; i++ {
		if ap.vn[i] > -restitutionThreshold {
			continue
		}
		p := contactPoint(set, i)
		ra := p.Sub(a.Position()).Cross(n)
		rb := p.Sub(b.Position()).Cross(n)
		k := inverseMass(a) + inverseMass(b) + inverseMoment(a)*ra*ra + inverseMoment(b)*rb*rb
		if k == 0 {
			continue
		}

		j := -(normalVelocity(a, b, p, n) + e*ap.vn[i]) / k
		if j <= 0 {
			continue
		}
		impulse := n.Mult(j)
		if isDynamic(b) {
			b.ApplyImpulseAtWorldPoint(impulse, p)
		}
		if isDynamic(a) {
			a.ApplyImpulseAtWorldPoint(impulse.Neg(), p)
		}
	}
}

// normalVelocity is negative while b approaches a along n.
func normalVelocity(a, b *cp.Body, p, n cp.Vector) float64 {
	return b.VelocityAtWorldPoint(p).Sub(a.VelocityAtWorldPoint(p)).Dot(n)
}

func contactPoint(set cp.ContactPointSet, i int) cp.Vector {
	return set.Points[i].PointA.Lerp(set.Points[i].PointB, 0.5)
}

func restitutionOf(s *cp.Shape) float64 {
	if f, ok := s.UserData.(*Fixture); ok {
		return f.restitution
	}
	return 0
}

func isDynamic(b *cp.Body) bool {
	return b.GetType() == cp.BODY_DYNAMIC
}

func inverseMass(b *cp.Body) float64 {
	if !isDynamic(b) {
		return 0
	}
	return 1 / b.Mass()
}

// inverseMoment is zero for static bodies and for fixed rotation.
func inverseMoment(b *cp.Body) float64 {
	if !isDynamic(b) {
		return 0
	}
	return 1 / b.Moment()
}

package world

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

func newCivilianTestWorld(t *testing.T) *World {
	t.Helper()
	off := false
	w, err := New(Config{Seed: "civ-test", SpawnSolSystem: &off}, Deps{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return w
}

func TestCivilianEconomy_ConsumptionGeneratesCredits(t *testing.T) {
	w := newCivilianTestWorld(t)
	planet := spawnTestColony(t, w)
	data, _ := w.Body(planet)
	data.Population = 1000
	data.Stocks[ResourceMetal] = 10
	data.Stocks[ResourceOrganics] = 10

	w.advanceCivilianEconomy(1.0)

	// 0.001 metal and 0.0005 organics per head per second.
	if got := data.Stocks[ResourceMetal]; math.Abs(got-9) > 1e-9 {
		t.Fatalf("expected 9 metal left, got %v", got)
	}
	if got := data.Stocks[ResourceOrganics]; math.Abs(got-9.5) > 1e-9 {
		t.Fatalf("expected 9.5 organics left, got %v", got)
	}
	wantCredits := 1.0*ResourceMetal.BasePrice() + 0.5*ResourceOrganics.BasePrice()
	if math.Abs(data.Credits-wantCredits) > 1e-9 {
		t.Fatalf("expected %v credits, got %v", wantCredits, data.Credits)
	}
}

func TestCivilianEconomy_ConsumptionClampsAtStock(t *testing.T) {
	w := newCivilianTestWorld(t)
	planet := spawnTestColony(t, w)
	data, _ := w.Body(planet)
	data.Population = 1e9
	data.Stocks[ResourceMetal] = 5

	w.advanceCivilianEconomy(1.0)

	if got := data.Stocks[ResourceMetal]; got != 0 {
		t.Fatalf("stock went negative or survived: %v", got)
	}
	if data.Credits < 5*ResourceMetal.BasePrice()-1e-9 {
		t.Fatalf("credits short for consumed stock: %v", data.Credits)
	}
}

func TestCivilianEconomy_CommissionsOneShipPerTick(t *testing.T) {
	w := newCivilianTestWorld(t)
	planet := spawnTestColony(t, w)
	eb, _ := w.Buildings(planet)
	if err := eb.Build(SlotOrbital, 0, BuildingShipyard); err != nil {
		t.Fatalf("shipyard build failed: %v", err)
	}
	data, _ := w.Body(planet)
	data.Credits = 2500

	w.advanceCivilianEconomy(0.1)
	if math.Abs(data.Credits-1500) > 1e-9 {
		t.Fatalf("expected 1500 credits after first purchase, got %v", data.Credits)
	}
	if w.QueuedCommands() != 1 {
		t.Fatalf("expected one queued BuildShip, got %d", w.QueuedCommands())
	}

	w.advanceCivilianEconomy(0.1)
	if math.Abs(data.Credits-500) > 1e-9 {
		t.Fatalf("expected 500 credits after second purchase, got %v", data.Credits)
	}

	w.advanceCivilianEconomy(0.1)
	if math.Abs(data.Credits-500) > 1e-9 {
		t.Fatalf("purchase went through without funds: %v", data.Credits)
	}
}

func TestCivilianEconomy_FleetCap(t *testing.T) {
	w := newCivilianTestWorld(t)
	planet := spawnTestColony(t, w)
	eb, _ := w.Buildings(planet)
	eb.Build(SlotOrbital, 0, BuildingShipyard)
	data, _ := w.Body(planet)
	data.Credits = 50000

	for i := 0; i < maxMiningShipsPerBase; i++ {
		w.SpawnMiningShip(PointF64{}, planet)
	}

	w.advanceCivilianEconomy(0.1)
	if math.Abs(data.Credits-50000) > 1e-9 {
		t.Fatalf("capped base still bought a ship: %v", data.Credits)
	}
	if w.QueuedCommands() != 0 {
		t.Fatalf("capped base queued a BuildShip")
	}
}

func TestCivilianShips_MiningAccruesCargo(t *testing.T) {
	w := newCivilianTestWorld(t)
	planet := spawnTestColony(t, w)
	data, _ := w.Body(planet)
	data.Yields = map[ResourceType]float64{ResourceMetal: 2.0}

	ship := w.SpawnMiningShip(PointF64{}, planet)
	ai := w.civilians[ship]
	ai.Phase = CivilianMining
	ai.Target = planet

	w.advanceCivilianShips(1.0)

	hold, _ := w.ShipCargo(ship)
	if got := hold.Contents[ResourceMetal]; math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("expected 2.0 metal mined, got %v", got)
	}
	if math.Abs(ai.MineTime-1.0) > 1e-9 {
		t.Fatalf("mine time not tracked: %v", ai.MineTime)
	}
}

func TestCivilianShips_FullHoldHeadsHome(t *testing.T) {
	w := newCivilianTestWorld(t)
	planet := spawnTestColony(t, w)
	data, _ := w.Body(planet)
	data.Yields = map[ResourceType]float64{ResourceMetal: 2.0}

	ship := w.SpawnMiningShip(PointF64{X: 50, Y: 0}, planet)
	ai := w.civilians[ship]
	ai.Phase = CivilianMining
	ai.Target = planet
	hold, _ := w.ShipCargo(ship)
	hold.Add(ResourceMetal, hold.Capacity)

	w.advanceCivilianShips(0.1)

	if ai.Phase != CivilianReturning {
		t.Fatalf("full ship stayed in phase %s", ai.Phase)
	}
	if w.QueuedCommands() != 1 {
		t.Fatalf("expected a queued MoveShip toward home, got %d", w.QueuedCommands())
	}
}

func TestCivilianShips_SellOnDocking(t *testing.T) {
	w := newCivilianTestWorld(t)
	planet := spawnTestColony(t, w)
	data, _ := w.Body(planet)
	home, _ := w.LocationF64(planet)

	ship := w.SpawnMiningShip(home, planet)
	ai := w.civilians[ship]
	ai.Phase = CivilianReturning
	hold, _ := w.ShipCargo(ship)
	hold.Add(ResourceMetal, 50)

	w.advanceCivilianShips(0.1)

	if ai.Phase != CivilianIdle {
		t.Fatalf("docked ship stayed in phase %s", ai.Phase)
	}
	if got := data.Stocks[ResourceMetal]; math.Abs(got-50) > 1e-9 {
		t.Fatalf("home stocks missing cargo: %v", got)
	}
	want := 50 * ResourceMetal.BasePrice()
	if math.Abs(data.Credits-want) > 1e-9 {
		t.Fatalf("expected %v credits from sale, got %v", want, data.Credits)
	}
	if hold.Load != 0 {
		t.Fatalf("cargo not cleared after sale: %v", hold.Load)
	}
}

func TestCivilianShips_IdleShipPicksSystemTarget(t *testing.T) {
	w := newCivilianTestWorld(t)
	star := w.SpawnStar("A", Point{})
	home := w.SpawnPlanet("A I", star, 16, 0, 0)
	other := w.SpawnPlanet("A II", star, 30, math.Pi, 0)

	homePos, _ := w.LocationF64(home)
	ship := w.SpawnMiningShip(homePos, home)
	ai := w.civilians[ship]

	w.advanceCivilianShips(0.1)

	if ai.Phase != CivilianMovingToMine {
		t.Fatalf("idle ship stayed in phase %s", ai.Phase)
	}
	if ai.Target != other {
		t.Fatalf("ship targeted %d, want %d (home excluded)", ai.Target, other)
	}
	if w.QueuedCommands() != 1 {
		t.Fatalf("no MoveShip queued for the run")
	}
}

func TestCivilianShips_ArrivalStartsMining(t *testing.T) {
	w := newCivilianTestWorld(t)
	planet := spawnTestColony(t, w)

	ship := w.SpawnMiningShip(PointF64{}, planet)
	ai := w.civilians[ship]
	ai.Phase = CivilianMovingToMine
	ai.Target = planet
	ai.MineTime = 99

	// No active move order means the ship has arrived.
	w.advanceCivilianShips(0.1)

	if ai.Phase != CivilianMining {
		t.Fatalf("arrived ship stayed in phase %s", ai.Phase)
	}
	if ai.MineTime != 0 {
		t.Fatalf("mine timer not reset: %v", ai.MineTime)
	}
	hold, _ := w.ShipCargo(ship)
	if hold.Load != 0 {
		t.Fatalf("ship mined on the arrival tick: %v", hold.Load)
	}

	w.advanceCivilianShips(1.0)
	if math.Abs(ai.MineTime-1.0) > 1e-9 {
		t.Fatalf("mining did not start on the next tick: %v", ai.MineTime)
	}
	if hold.Load <= 0 {
		t.Fatalf("no cargo accrued after a full mining tick")
	}
}

func TestUpdate_SeededRunsStayInLockstep(t *testing.T) {
	build := func() *World {
		w := newCivilianTestWorld(t)
		star := w.SpawnStar("A", Point{})
		for i := 0; i < 4; i++ {
			planet := w.SpawnPlanet(fmt.Sprintf("A %d", i+1), star, 16+float64(i)*8, float64(i), 0.1)
			eb, _ := w.Buildings(planet)
			if err := eb.Build(SlotOrbital, 0, BuildingShipyard); err != nil {
				t.Fatalf("shipyard build failed: %v", err)
			}
			data, _ := w.Body(planet)
			data.Credits = 5000
			pos, _ := w.LocationF64(planet)
			w.SpawnMiningShip(pos, planet)
		}
		return w
	}

	a, b := build(), build()
	for tick := uint64(1); tick <= 6; tick++ {
		a.Update(0.1, tick)
		b.Update(0.1, tick)
	}

	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Fatalf("identically seeded worlds diverged:\n%+v\nvs\n%+v", a.Snapshot(), b.Snapshot())
	}
	for _, id := range a.Entities() {
		da, aok := a.Body(id)
		db, bok := b.Body(id)
		if aok != bok {
			t.Fatalf("body presence diverged for entity %d", id)
		}
		if aok && !reflect.DeepEqual(da, db) {
			t.Fatalf("body %d diverged:\n%+v\nvs\n%+v", id, da, db)
		}
	}
	if a.QueuedCommands() != b.QueuedCommands() {
		t.Fatalf("queued commands diverged: %d vs %d", a.QueuedCommands(), b.QueuedCommands())
	}
}

func TestPredictOrbitalIntercept(t *testing.T) {
	w := newCivilianTestWorld(t)
	star := w.SpawnStar("A", Point{})
	planet := w.SpawnPlanet("A I", star, 16, 0, 0.5)

	from := PointF64{X: 100, Y: 0}
	predicted := w.predictOrbitalIntercept(from, miningShipSpeed, planet)

	current, _ := w.LocationF64(planet)
	if predicted == current {
		t.Fatalf("intercept did not lead a moving target")
	}
	starPos, _ := w.LocationF64(star)
	if d := starPos.DistanceTo(predicted); math.Abs(d-16) > 1e-6 {
		t.Fatalf("predicted point left the orbit: radius %v", d)
	}

	if got := w.predictOrbitalIntercept(from, miningShipSpeed, star); got != starPos {
		t.Fatalf("static target should resolve to its position, got %+v", got)
	}
}

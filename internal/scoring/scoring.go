package scoring

import "math"

// Category — закрытый перечень категорий зачёта.
// Не строковые ключи: таблицы ставок и допусков индексируются по enum.
type Category int

const (
	CategoryOther Category = iota // не распознали — ноль очков
	CategoryRoadRun
	CategoryTrailRun
	CategoryWalk
	CategoryHike
	CategoryRide
	CategoryWorkout
)

func (c Category) String() string {
	switch c {
	case CategoryRoadRun:
		return "Road Run"
	case CategoryTrailRun:
		return "Trail Run"
	case CategoryWalk:
		return "Walk"
	case CategoryHike:
		return "Hike"
	case CategoryRide:
		return "Ride"
	case CategoryWorkout:
		return "Workout"
	default:
		return "Other"
	}
}

// rate — ставка категории: либо очки за километр, либо фикс за активность.
type rate struct {
	perKm   float64
	perUnit int
}

var rates = map[Category]rate{
	CategoryRoadRun:  {perKm: 1},
	CategoryTrailRun: {perKm: 1},
	CategoryWalk:     {perKm: 0.5},
	CategoryHike:     {perKm: 0.5},
	CategoryRide:     {perKm: 0.25},
	CategoryWorkout:  {perUnit: 3},
	CategoryOther:    {},
}

// ElevationBonus — очков за каждые ПОЛНЫЕ 1000 м набора; частичные не считаются.
const ElevationBonus = 6

var elevationEligible = map[Category]bool{
	CategoryTrailRun: true,
	CategoryHike:     true,
	CategoryRide:     true,
}

// ElevationEligible — начисляется ли категории бонус за набор высоты.
func ElevationEligible(c Category) bool { return elevationEligible[c] }

// CountBased — категория с фиксированной ставкой за активность (не за дистанцию).
func CountBased(c Category) bool { return rates[c].perUnit > 0 }

// Categories — все категории зачёта в порядке вывода, без Other.
func Categories() []Category {
	return []Category{
		CategoryRoadRun,
		CategoryTrailRun,
		CategoryWalk,
		CategoryHike,
		CategoryRide,
		CategoryWorkout,
	}
}

// Normalize — тип источника → категория зачёта. Неизвестные типы падают в Other.
func Normalize(rawType string) Category {
	switch rawType {
	case "Run", "VirtualRun":
		return CategoryRoadRun
	case "TrailRun":
		return CategoryTrailRun
	case "Walk":
		return CategoryWalk
	case "Hike":
		return CategoryHike
	case "Ride", "VirtualRide", "MountainBikeRide", "GravelRide":
		return CategoryRide
	case "Workout", "WeightTraining", "Crossfit", "HighIntensityIntervalTraining", "Yoga", "Pilates", "Swim":
		return CategoryWorkout
	default:
		// EBikeRide и прочая экзотика сюда же — очков не даём
		return CategoryOther
	}
}

// CumulativeActivityPoints — очки категории по НАКОПЛЕННЫМ метрам/количеству.
// floor берётся один раз от суммы: floor не дистрибутивен по сложению, и именно
// эта форма — авторитетная для командных, личных и дневных итогов.
func CumulativeActivityPoints(c Category, totalMeters float64, count int) int {
	r := rates[c]
	if r.perUnit > 0 {
		return count * r.perUnit
	}
	return int(math.Floor(totalMeters / 1000 * r.perKm))
}

// CumulativeElevationPoints — бонус по накопленному набору высоты в метрах.
func CumulativeElevationPoints(totalMeters float64) int {
	return int(math.Floor(totalMeters/1000)) * ElevationBonus
}

// Points — разбивка очков одной активности.
type Points struct {
	Category  Category
	Activity  int
	Elevation int
	Total     int
}

// ScoreActivity — построчная оценка одной активности. Это приближение для
// отображения: суммировать эти значения в зачёт нельзя, итоги считаются
// через Cumulative*-функции.
func ScoreActivity(rawType string, distanceMeters, elevationMeters float64) Points {
	cat := Normalize(rawType)
	ap := CumulativeActivityPoints(cat, distanceMeters, 1)
	ep := 0
	if ElevationEligible(cat) {
		ep = CumulativeElevationPoints(elevationMeters)
	}
	return Points{Category: cat, Activity: ap, Elevation: ep, Total: ap + ep}
}

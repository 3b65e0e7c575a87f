package scoring

import "testing"

func TestResolveID_StableAcrossRuns(t *testing.T) {
	a := ResolveID("Ivan P.", "Morning Run", 5200, "Run", map[string]int{})
	b := ResolveID("Ivan P.", "Morning Run", 5200, "Run", map[string]int{})
	if a != b {
		t.Fatalf("один кортеж в разных проходах дал разные id: %q и %q", a, b)
	}
	if a == "" {
		t.Fatal("пустой id")
	}
}

func TestResolveID_DistanceFormatting(t *testing.T) {
	// 5200 и 5200.0 — одно и то же число, id обязан совпасть
	a := ResolveID("Ivan P.", "Run", 5200, "Run", map[string]int{})
	b := ResolveID("Ivan P.", "Run", 5200.0, "Run", map[string]int{})
	if a != b {
		t.Fatalf("форматирование дистанции нестабильно: %q vs %q", a, b)
	}
}

func TestResolveID_CollisionSuffixes(t *testing.T) {
	seen := map[string]int{}
	first := ResolveID("Ivan P.", "Lunch Run", 3000, "Run", seen)
	second := ResolveID("Ivan P.", "Lunch Run", 3000, "Run", seen)
	third := ResolveID("Ivan P.", "Lunch Run", 3000, "Run", seen)

	if second != first+"_1" {
		t.Fatalf("второй дубль: ожидали %q, получили %q", first+"_1", second)
	}
	if third != first+"_2" {
		t.Fatalf("третий дубль: ожидали %q, получили %q", first+"_2", third)
	}
}

func TestResolveID_DifferentTuplesDiffer(t *testing.T) {
	seen := map[string]int{}
	a := ResolveID("Ivan P.", "Run", 5000, "Run", seen)
	b := ResolveID("Anna K.", "Run", 5000, "Run", seen)
	if a == b {
		t.Fatalf("разные спортсмены получили один id %q", a)
	}
}

func TestHashID_NonNegativeDecimal(t *testing.T) {
	// длинная строка уводит int32 в переполнение — id всё равно
	// неотрицательное десятичное число
	id := hashID("Oleg V.|Длинное название забега с кучей символов и эмодзи 🏃|21097.5|Run")
	if id == "" || id[0] == '-' {
		t.Fatalf("ожидали неотрицательный десятичный id, получили %q", id)
	}
}

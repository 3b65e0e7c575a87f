package models

// Roster — состав зачёта: упорядоченный список команд и привязка
// нормализованного имени спортсмена к команде. Имя, которого нет в Members,
// в зачёт не попадает (активность при этом хранится).
type Roster struct {
	Teams   []string          `json:"teams"`
	Members map[string]string `json:"members"`
}

// TeamOf — команда спортсмена по отображаемому имени.
func (r Roster) TeamOf(name string) (string, bool) {
	team, ok := r.Members[name]
	return team, ok
}

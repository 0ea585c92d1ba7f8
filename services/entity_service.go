package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"diligencias_app_go/models"

	"gorm.io/gorm"
)

// ErrValidation marks errors caused by missing required fields. Handlers
// surface these inline without touching the database.
var ErrValidation = errors.New("validation failed")

// EntityKind tags the three related-entity tables managed by one surface.
type EntityKind string

const (
	KindAtestado EntityKind = "atestado"
	KindPersona  EntityKind = "persona"
	KindLetrado  EntityKind = "letrado"
)

// ParseEntityKind converts a form/query value into an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(s) {
	case KindAtestado, KindPersona, KindLetrado:
		return EntityKind(s), nil
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// Entity is a tagged variant over CaseRecord, Person and Lawyer. Exactly one
// of the three pointers is set, matching Kind.
type Entity struct {
	Kind     EntityKind
	Atestado *models.CaseRecord
	Persona  *models.Person
	Letrado  *models.Lawyer
}

// NewAtestado wraps a CaseRecord as an Entity.
func NewAtestado(r *models.CaseRecord) Entity {
	return Entity{Kind: KindAtestado, Atestado: r}
}

// NewPersona wraps a Person as an Entity.
func NewPersona(p *models.Person) Entity {
	return Entity{Kind: KindPersona, Persona: p}
}

// NewLetrado wraps a Lawyer as an Entity.
func NewLetrado(l *models.Lawyer) Entity {
	return Entity{Kind: KindLetrado, Letrado: l}
}

// ID returns the row id of the wrapped record (0 before insert).
func (e Entity) ID() uint {
	switch e.Kind {
	case KindAtestado:
		return e.Atestado.ID
	case KindPersona:
		return e.Persona.ID
	case KindLetrado:
		return e.Letrado.ID
	}
	return 0
}

// Key returns the "kind-id" identifier used for the transient selection set.
func (e Entity) Key() string {
	return fmt.Sprintf("%s-%d", e.Kind, e.ID())
}

// CreatedAt returns the creation timestamp of the wrapped record.
func (e Entity) CreatedAt() time.Time {
	switch e.Kind {
	case KindAtestado:
		return e.Atestado.CreatedAt
	case KindPersona:
		return e.Persona.CreatedAt
	case KindLetrado:
		return e.Letrado.CreatedAt
	}
	return time.Time{}
}

// Label returns a short human-readable identifier, used in confirmation
// dialogs and audit entries.
func (e Entity) Label() string {
	switch e.Kind {
	case KindAtestado:
		return e.Atestado.Numero
	case KindPersona:
		return strings.TrimSpace(e.Persona.Nombre + " " + e.Persona.Apellido1)
	case KindLetrado:
		return strings.TrimSpace(e.Letrado.Nombre + " " + e.Letrado.Numero)
	}
	return ""
}

// Validate checks the kind-specific required fields. Returned errors wrap
// ErrValidation.
func (e Entity) Validate() error {
	var missing []string
	switch e.Kind {
	case KindAtestado:
		if strings.TrimSpace(e.Atestado.Numero) == "" {
			missing = append(missing, "numero")
		}
		if strings.TrimSpace(e.Atestado.Delito) == "" {
			missing = append(missing, "delito")
		}
		if strings.TrimSpace(e.Atestado.Juzgado) == "" {
			missing = append(missing, "juzgado")
		}
	case KindPersona:
		if strings.TrimSpace(e.Persona.Nombre) == "" {
			missing = append(missing, "nombre")
		}
		if strings.TrimSpace(e.Persona.Apellido1) == "" {
			missing = append(missing, "apellido1")
		}
		if strings.TrimSpace(e.Persona.Documento) == "" {
			missing = append(missing, "documento")
		}
	case KindLetrado:
		if strings.TrimSpace(e.Letrado.LetradoTipo) == "" {
			missing = append(missing, "letrado_tipo")
		}
		if strings.TrimSpace(e.Letrado.Nombre) == "" {
			missing = append(missing, "nombre")
		}
		if strings.TrimSpace(e.Letrado.Numero) == "" {
			missing = append(missing, "numero")
		}
	default:
		return fmt.Errorf("%w: unknown entity kind", ErrValidation)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: required fields missing: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// MatchesFilter reports whether the entity matches a free-text filter over
// its kind-appropriate fields. Matching is a case-insensitive substring
// check; the empty filter matches everything.
func (e Entity) MatchesFilter(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return true
	}

	var fields []string
	switch e.Kind {
	case KindAtestado:
		fields = []string{e.Atestado.Numero, e.Atestado.Delito, e.Atestado.Juzgado}
	case KindPersona:
		fields = []string{
			e.Persona.Nombre, e.Persona.Apellido1, e.Persona.Apellido2,
			e.Persona.Documento, e.Persona.Atestado, e.Persona.Relacion,
		}
	case KindLetrado:
		fields = []string{e.Letrado.Nombre, e.Letrado.Numero, e.Letrado.Telefono, e.Letrado.Atestado}
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), text) {
			return true
		}
	}
	return false
}

// LoadEntities reads the three entity tables for a user concurrently, each
// ordered by creation time descending, and merges the rows into one list
// sorted by creation time descending (stable, so per-table order is kept on
// ties). A failing table is reported in the returned error map and leaves the
// other two untouched.
func LoadEntities(db *gorm.DB, userID string) ([]Entity, map[EntityKind]error) {
	var (
		atestados []models.CaseRecord
		personas  []models.Person
		letrados  []models.Lawyer

		mu       sync.Mutex
		loadErrs = make(map[EntityKind]error)
		wg       sync.WaitGroup
	)

	fail := func(kind EntityKind, err error) {
		mu.Lock()
		loadErrs[kind] = err
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := db.Where("usuario = ?", userID).Order("created_at DESC").Find(&atestados).Error; err != nil {
			fail(KindAtestado, fmt.Errorf("failed to load atestados: %w", err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := db.Where("usuario = ?", userID).Order("created_at DESC").Find(&personas).Error; err != nil {
			fail(KindPersona, fmt.Errorf("failed to load personas: %w", err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := db.Where("usuario = ?", userID).Order("created_at DESC").Find(&letrados).Error; err != nil {
			fail(KindLetrado, fmt.Errorf("failed to load letrados: %w", err))
		}
	}()
	wg.Wait()

	entities := make([]Entity, 0, len(atestados)+len(personas)+len(letrados))
	if loadErrs[KindAtestado] == nil {
		for i := range atestados {
			entities = append(entities, NewAtestado(&atestados[i]))
		}
	}
	if loadErrs[KindPersona] == nil {
		for i := range personas {
			entities = append(entities, NewPersona(&personas[i]))
		}
	}
	if loadErrs[KindLetrado] == nil {
		for i := range letrados {
			entities = append(entities, NewLetrado(&letrados[i]))
		}
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].CreatedAt().After(entities[j].CreatedAt())
	})

	if len(loadErrs) == 0 {
		return entities, nil
	}
	return entities, loadErrs
}

// FilterEntities returns the entities matching a free-text filter. The input
// slice is not modified.
func FilterEntities(entities []Entity, text string) []Entity {
	if strings.TrimSpace(text) == "" {
		return entities
	}
	filtered := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if e.MatchesFilter(text) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// SortSelected moves selected entities to the front, keeping the relative
// order of both groups. Selection is transient view state keyed by
// Entity.Key; it is never persisted.
func SortSelected(entities []Entity, selected map[string]bool) []Entity {
	if len(selected) == 0 {
		return entities
	}
	out := make([]Entity, len(entities))
	copy(out, entities)
	sort.SliceStable(out, func(i, j int) bool {
		return selected[out[i].Key()] && !selected[out[j].Key()]
	})
	return out
}

// SaveEntity creates or updates a related-entity record. The required-field
// rule is applied first; a validation failure performs no database call.
// Updates are scoped by id AND usuario as defense in depth against
// cross-user mutation; inserts attach the owning user id.
func SaveEntity(db *gorm.DB, userID string, e Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}

	switch e.Kind {
	case KindAtestado:
		r := e.Atestado
		if r.ID != 0 {
			return updateScoped(db, &models.CaseRecord{}, r.ID, userID, map[string]interface{}{
				"numero":  strings.TrimSpace(r.Numero),
				"delito":  strings.TrimSpace(r.Delito),
				"juzgado": strings.TrimSpace(r.Juzgado),
			})
		}
		r.Usuario = userID
		if err := db.Create(r).Error; err != nil {
			return fmt.Errorf("failed to save atestado: %w", err)
		}
	case KindPersona:
		p := e.Persona
		if p.ID != 0 {
			return updateScoped(db, &models.Person{}, p.ID, userID, map[string]interface{}{
				"atestado":         strings.TrimSpace(p.Atestado),
				"nombre":           strings.TrimSpace(p.Nombre),
				"apellido1":        strings.TrimSpace(p.Apellido1),
				"apellido2":        strings.TrimSpace(p.Apellido2),
				"documento":        strings.TrimSpace(p.Documento),
				"fecha_nacimiento": p.FechaNacimiento,
				"nacimiento_lugar": strings.TrimSpace(p.NacimientoLugar),
				"direccion":        strings.TrimSpace(p.Direccion),
				"telefono":         strings.TrimSpace(p.Telefono),
				"relacion":         p.Relacion,
			})
		}
		p.Usuario = userID
		if err := db.Create(p).Error; err != nil {
			return fmt.Errorf("failed to save persona: %w", err)
		}
	case KindLetrado:
		l := e.Letrado
		if l.ID != 0 {
			return updateScoped(db, &models.Lawyer{}, l.ID, userID, map[string]interface{}{
				"letrado_tipo": strings.TrimSpace(l.LetradoTipo),
				"nombre":       strings.TrimSpace(l.Nombre),
				"numero":       strings.TrimSpace(l.Numero),
				"telefono":     strings.TrimSpace(l.Telefono),
				"atestado":     strings.TrimSpace(l.Atestado),
			})
		}
		l.Usuario = userID
		if err := db.Create(l).Error; err != nil {
			return fmt.Errorf("failed to save letrado: %w", err)
		}
	}
	return nil
}

func updateScoped(db *gorm.DB, model interface{}, id uint, userID string, values map[string]interface{}) error {
	result := db.Model(model).Where("id = ? AND usuario = ?", id, userID).Updates(values)
	if result.Error != nil {
		return fmt.Errorf("failed to update entity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("entity %d not found for user", id)
	}
	return nil
}

// GetEntity fetches a single record by kind and id, scoped to the user.
func GetEntity(db *gorm.DB, userID string, kind EntityKind, id uint) (Entity, error) {
	switch kind {
	case KindAtestado:
		var r models.CaseRecord
		if err := db.Where("id = ? AND usuario = ?", id, userID).First(&r).Error; err != nil {
			return Entity{}, fmt.Errorf("atestado %d not found: %w", id, err)
		}
		return NewAtestado(&r), nil
	case KindPersona:
		var p models.Person
		if err := db.Where("id = ? AND usuario = ?", id, userID).First(&p).Error; err != nil {
			return Entity{}, fmt.Errorf("persona %d not found: %w", id, err)
		}
		return NewPersona(&p), nil
	case KindLetrado:
		var l models.Lawyer
		if err := db.Where("id = ? AND usuario = ?", id, userID).First(&l).Error; err != nil {
			return Entity{}, fmt.Errorf("letrado %d not found: %w", id, err)
		}
		return NewLetrado(&l), nil
	}
	return Entity{}, fmt.Errorf("unknown entity kind %q", kind)
}

// DeleteEntity removes one record from the table matching its kind, scoped by
// id AND usuario.
func DeleteEntity(db *gorm.DB, userID string, kind EntityKind, id uint) error {
	var result *gorm.DB
	switch kind {
	case KindAtestado:
		result = db.Where("id = ? AND usuario = ?", id, userID).Delete(&models.CaseRecord{})
	case KindPersona:
		result = db.Where("id = ? AND usuario = ?", id, userID).Delete(&models.Person{})
	case KindLetrado:
		result = db.Where("id = ? AND usuario = ?", id, userID).Delete(&models.Lawyer{})
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}

	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, result.Error)
	}
	return nil
}

// DeleteAllEntities wipes the three entity tables for a user with three
// concurrent deletes. There is no transaction across tables: a failing table
// is reported in the error map while the others complete, which is
// acceptable because partial deletion is recoverable by re-running.
func DeleteAllEntities(db *gorm.DB, userID string) map[EntityKind]error {
	var (
		mu      sync.Mutex
		delErrs = make(map[EntityKind]error)
		wg      sync.WaitGroup
	)

	run := func(kind EntityKind, model interface{}) {
		defer wg.Done()
		if err := db.Where("usuario = ?", userID).Delete(model).Error; err != nil {
			mu.Lock()
			delErrs[kind] = fmt.Errorf("failed to delete %s: %w", kind, err)
			mu.Unlock()
		}
	}

	wg.Add(3)
	go run(KindAtestado, &models.CaseRecord{})
	go run(KindPersona, &models.Person{})
	go run(KindLetrado, &models.Lawyer{})
	wg.Wait()

	if len(delErrs) == 0 {
		return nil
	}
	return delErrs
}

// AvailableCaseNumbers returns the sorted atestado numbers currently loaded,
// used to populate the atestado choice list on persona and letrado forms.
// The reference stays free text: deleting or renaming an atestado does not
// touch rows that mention its old number.
func AvailableCaseNumbers(entities []Entity) []string {
	var numbers []string
	for _, e := range entities {
		if e.Kind == KindAtestado && e.Atestado.Numero != "" {
			numbers = append(numbers, e.Atestado.Numero)
		}
	}
	sort.Strings(numbers)
	return numbers
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

// In-memory store backing the service tests. The fake unit of work takes
// a snapshot before running the callback and restores it on error, so
// rollback behavior is observable.
type fakeStore struct {
	libros       map[int64]entity.Libro
	prestamos    map[int64]entity.Prestamo
	devoluciones map[int64]entity.Devolucion
	usuarios     map[int64]entity.Usuario
	roles        map[int64]entity.Rol
	loggeos      map[int64]entity.Loggeo
	nextID       int64

	// error injection; devolucionInsertErr fires once so the raw
	// fallback path can succeed afterwards
	libroUpdateErr      error
	prestamoInsertErr   error
	prestamoUpdateErr   error
	devolucionInsertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		libros:       map[int64]entity.Libro{},
		prestamos:    map[int64]entity.Prestamo{},
		devoluciones: map[int64]entity.Devolucion{},
		usuarios:     map[int64]entity.Usuario{},
		roles:        map[int64]entity.Rol{},
		loggeos:      map[int64]entity.Loggeo{},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) snapshot() *fakeStore {
	c := newFakeStore()
	c.nextID = f.nextID
	for k, v := range f.libros {
		c.libros[k] = v
	}
	for k, v := range f.prestamos {
		c.prestamos[k] = v
	}
	for k, v := range f.devoluciones {
		c.devoluciones[k] = v
	}
	for k, v := range f.usuarios {
		c.usuarios[k] = v
	}
	for k, v := range f.roles {
		c.roles[k] = v
	}
	for k, v := range f.loggeos {
		c.loggeos[k] = v
	}
	return c
}

func (f *fakeStore) restore(s *fakeStore) {
	f.libros = s.libros
	f.prestamos = s.prestamos
	f.devoluciones = s.devoluciones
	f.usuarios = s.usuarios
	f.roles = s.roles
	f.loggeos = s.loggeos
	f.nextID = s.nextID
}

func (f *fakeStore) repos() Repos {
	return Repos{
		Libros:       &fakeLibroRepo{f},
		Prestamos:    &fakePrestamoRepo{f},
		Devoluciones: &fakeDevolucionRepo{f},
		Usuarios:     &fakeUsuarioRepo{f},
		Roles:        &fakeRolRepo{f},
		Loggeos:      &fakeLoggeoRepo{f},
	}
}

func (f *fakeStore) uow() UnitOfWork {
	return &fakeUoW{store: f}
}

func (f *fakeStore) addLibro(l entity.Libro) entity.Libro {
	if l.ID == 0 {
		l.ID = f.id()
	} else if l.ID > f.nextID {
		f.nextID = l.ID
	}
	f.libros[l.ID] = l
	return l
}

func (f *fakeStore) addPrestamo(p entity.Prestamo) entity.Prestamo {
	if p.ID == 0 {
		p.ID = f.id()
	} else if p.ID > f.nextID {
		f.nextID = p.ID
	}
	f.prestamos[p.ID] = p
	return p
}

type fakeUoW struct {
	store *fakeStore
	calls int
}

func (u *fakeUoW) Do(ctx context.Context, fn func(Repos) error) error {
	u.calls++
	snap := u.store.snapshot()
	if err := fn(u.store.repos()); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

type fakeLibroRepo struct{ s *fakeStore }

func (r *fakeLibroRepo) List(ctx context.Context) ([]entity.Libro, error) {
	out := make([]entity.Libro, 0, len(r.s.libros))
	for _, l := range r.s.libros {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeLibroRepo) GetByID(ctx context.Context, id int64) (entity.Libro, error) {
	l, ok := r.s.libros[id]
	if !ok {
		return entity.Libro{}, ErrNotFound
	}
	return l, nil
}

func (r *fakeLibroRepo) GetByISBN(ctx context.Context, isbn string) (entity.Libro, error) {
	for _, l := range r.s.libros {
		if l.ISBN == isbn {
			return l, nil
		}
	}
	return entity.Libro{}, ErrNotFound
}

func (r *fakeLibroRepo) Insert(ctx context.Context, l *entity.Libro) error {
	for _, existing := range r.s.libros {
		if existing.ISBN == l.ISBN {
			return fmt.Errorf("%w: duplicate isbn %s", ErrIntegrityConflict, l.ISBN)
		}
	}
	l.ID = r.s.id()
	l.FechaRegistro = time.Now()
	l.UltimaActualizacion = l.FechaRegistro
	r.s.libros[l.ID] = *l
	return nil
}

func (r *fakeLibroRepo) InsertRaw(ctx context.Context, l *entity.Libro) error {
	cp := *l
	return r.Insert(ctx, &cp)
}

func (r *fakeLibroRepo) Update(ctx context.Context, l *entity.Libro) error {
	if r.s.libroUpdateErr != nil {
		return r.s.libroUpdateErr
	}
	if _, ok := r.s.libros[l.ID]; !ok {
		return ErrNotFound
	}
	l.UltimaActualizacion = time.Now()
	r.s.libros[l.ID] = *l
	return nil
}

func (r *fakeLibroRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.libros[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.libros, id)
	return nil
}

type fakePrestamoRepo struct{ s *fakeStore }

func (r *fakePrestamoRepo) List(ctx context.Context) ([]entity.Prestamo, error) {
	out := make([]entity.Prestamo, 0, len(r.s.prestamos))
	for _, p := range r.s.prestamos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePrestamoRepo) GetByID(ctx context.Context, id int64) (entity.Prestamo, error) {
	p, ok := r.s.prestamos[id]
	if !ok {
		return entity.Prestamo{}, ErrNotFound
	}
	return p, nil
}

func (r *fakePrestamoRepo) Search(ctx context.Context, idPrestamo *int64, solicitante string) ([]entity.Prestamo, error) {
	all, _ := r.List(ctx)
	var out []entity.Prestamo
	for _, p := range all {
		if idPrestamo != nil && p.ID != *idPrestamo {
			continue
		}
		if solicitante != "" && !strings.Contains(strings.ToLower(p.Solicitante), strings.ToLower(solicitante)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePrestamoRepo) CountActivosPorLibro(ctx context.Context, idLibro int64) (int, error) {
	n := 0
	for _, p := range r.s.prestamos {
		if p.IDLibro != nil && *p.IDLibro == idLibro && p.Activo() {
			n++
		}
	}
	return n, nil
}

func (r *fakePrestamoRepo) Insert(ctx context.Context, p *entity.Prestamo) error {
	if r.s.prestamoInsertErr != nil {
		return r.s.prestamoInsertErr
	}
	p.ID = r.s.id()
	r.s.prestamos[p.ID] = *p
	return nil
}

func (r *fakePrestamoRepo) Update(ctx context.Context, p *entity.Prestamo) error {
	if r.s.prestamoUpdateErr != nil {
		return r.s.prestamoUpdateErr
	}
	if _, ok := r.s.prestamos[p.ID]; !ok {
		return ErrNotFound
	}
	r.s.prestamos[p.ID] = *p
	return nil
}

func (r *fakePrestamoRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.prestamos[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.prestamos, id)
	return nil
}

type fakeDevolucionRepo struct{ s *fakeStore }

func (r *fakeDevolucionRepo) List(ctx context.Context) ([]entity.Devolucion, error) {
	out := make([]entity.Devolucion, 0, len(r.s.devoluciones))
	for _, d := range r.s.devoluciones {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDevolucionRepo) GetByID(ctx context.Context, id int64) (entity.Devolucion, error) {
	d, ok := r.s.devoluciones[id]
	if !ok {
		return entity.Devolucion{}, ErrNotFound
	}
	return d, nil
}

func (r *fakeDevolucionRepo) GetByPrestamo(ctx context.Context, idPrestamo int64) (entity.Devolucion, error) {
	for _, d := range r.s.devoluciones {
		if d.IDPrestamo != nil && *d.IDPrestamo == idPrestamo {
			return d, nil
		}
	}
	return entity.Devolucion{}, ErrNotFound
}

func (r *fakeDevolucionRepo) Insert(ctx context.Context, d *entity.Devolucion) error {
	if err := r.s.devolucionInsertErr; err != nil {
		r.s.devolucionInsertErr = nil
		return err
	}
	if d.IDPrestamo != nil {
		if _, err := r.GetByPrestamo(ctx, *d.IDPrestamo); err == nil {
			return fmt.Errorf("%w: duplicate devolucion for prestamo %d", ErrIntegrityConflict, *d.IDPrestamo)
		}
	}
	d.ID = r.s.id()
	r.s.devoluciones[d.ID] = *d
	return nil
}

func (r *fakeDevolucionRepo) InsertRaw(ctx context.Context, d *entity.Devolucion) error {
	cp := *d
	return r.Insert(ctx, &cp)
}

func (r *fakeDevolucionRepo) Update(ctx context.Context, d *entity.Devolucion) error {
	if _, ok := r.s.devoluciones[d.ID]; !ok {
		return ErrNotFound
	}
	r.s.devoluciones[d.ID] = *d
	return nil
}

func (r *fakeDevolucionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.devoluciones[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.devoluciones, id)
	return nil
}

type fakeUsuarioRepo struct{ s *fakeStore }

func (r *fakeUsuarioRepo) List(ctx context.Context) ([]entity.Usuario, error) {
	out := make([]entity.Usuario, 0, len(r.s.usuarios))
	for _, u := range r.s.usuarios {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUsuarioRepo) GetByID(ctx context.Context, id int64) (entity.Usuario, error) {
	u, ok := r.s.usuarios[id]
	if !ok {
		return entity.Usuario{}, ErrNotFound
	}
	return u, nil
}

func (r *fakeUsuarioRepo) GetByUsername(ctx context.Context, username string) (entity.Usuario, error) {
	for _, u := range r.s.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return entity.Usuario{}, ErrNotFound
}

func (r *fakeUsuarioRepo) Insert(ctx context.Context, u *entity.Usuario) error {
	u.ID = r.s.id()
	u.FechaRegistro = time.Now()
	r.s.usuarios[u.ID] = *u
	return nil
}

func (r *fakeUsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	if _, ok := r.s.usuarios[u.ID]; !ok {
		return ErrNotFound
	}
	r.s.usuarios[u.ID] = *u
	return nil
}

func (r *fakeUsuarioRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.usuarios[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.usuarios, id)
	return nil
}

type fakeRolRepo struct{ s *fakeStore }

func (r *fakeRolRepo) List(ctx context.Context) ([]entity.Rol, error) {
	out := make([]entity.Rol, 0, len(r.s.roles))
	for _, rol := range r.s.roles {
		out = append(out, rol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRolRepo) GetByID(ctx context.Context, id int64) (entity.Rol, error) {
	rol, ok := r.s.roles[id]
	if !ok {
		return entity.Rol{}, ErrNotFound
	}
	return rol, nil
}

func (r *fakeRolRepo) GetByNombre(ctx context.Context, nombre string) (entity.Rol, error) {
	for _, rol := range r.s.roles {
		if rol.NombreRol == nombre {
			return rol, nil
		}
	}
	return entity.Rol{}, ErrNotFound
}

func (r *fakeRolRepo) Insert(ctx context.Context, rol *entity.Rol) error {
	rol.ID = r.s.id()
	rol.FechaCreacion = time.Now()
	r.s.roles[rol.ID] = *rol
	return nil
}

func (r *fakeRolRepo) Update(ctx context.Context, rol *entity.Rol) error {
	if _, ok := r.s.roles[rol.ID]; !ok {
		return ErrNotFound
	}
	r.s.roles[rol.ID] = *rol
	return nil
}

type fakeLoggeoRepo struct{ s *fakeStore }

func (r *fakeLoggeoRepo) List(ctx context.Context, idUsuario *int64) ([]entity.Loggeo, error) {
	out := make([]entity.Loggeo, 0, len(r.s.loggeos))
	for _, l := range r.s.loggeos {
		if idUsuario != nil && l.IDUsuario != *idUsuario {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaLogin.After(out[j].FechaLogin) })
	return out, nil
}

func (r *fakeLoggeoRepo) LatestByUsuario(ctx context.Context, idUsuario int64) (entity.Loggeo, error) {
	entries, _ := r.List(ctx, &idUsuario)
	if len(entries) == 0 {
		return entity.Loggeo{}, ErrNotFound
	}
	return entries[0], nil
}

func (r *fakeLoggeoRepo) Insert(ctx context.Context, l *entity.Loggeo) error {
	l.ID = r.s.id()
	r.s.loggeos[l.ID] = *l
	return nil
}

func (r *fakeLoggeoRepo) Update(ctx context.Context, l *entity.Loggeo) error {
	if _, ok := r.s.loggeos[l.ID]; !ok {
		return ErrNotFound
	}
	r.s.loggeos[l.ID] = *l
	return nil
}

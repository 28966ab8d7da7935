package model

// WorldObject - базовые данные любого объекта симуляции: ObjectID, Name и Location.
// Не потокобезопасен: все мутации идут из tick loop.
type WorldObject struct {
	objectID uint32
	name     string
	location Location
}

// NewWorldObject создаёт новый объект в симуляции.
func NewWorldObject(objectID uint32, name string, loc Location) WorldObject {
	return WorldObject{
		objectID: objectID,
		name:     name,
		location: loc,
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name возвращает имя объекта.
func (w *WorldObject) Name() string {
	return w.name
}

// Location возвращает копию координат объекта (value type).
func (w *WorldObject) Location() Location {
	return w.location
}

// SetLocation устанавливает новые координаты объекта.
func (w *WorldObject) SetLocation(loc Location) {
	w.location = loc
}

package product

// Service orchestrates catalog reads and admin writes.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(filter Filter, sortBy Sort) ([]Product, error) {
	if !sortFields[sortBy.Field] {
		sortBy = DefaultSort
	}
	return s.repo.List(filter, sortBy)
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

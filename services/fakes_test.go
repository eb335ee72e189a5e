package services

import (
	"context"
	"mime/multipart"
	"sort"
	"strings"

	"gadget-store/models"
	"gadget-store/repositories"
)

// In-memory fakes for the store interfaces. IDs are assigned sequentially the
// way the serial columns would.

type fakeCategoryStore struct {
	nextID     int
	categories map[int]*models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{nextID: 1, categories: map[int]*models.Category{}}
}

func (f *fakeCategoryStore) add(c models.Category) *models.Category {
	c.ID = f.nextID
	f.nextID++
	stored := c
	f.categories[stored.ID] = &stored
	return &stored
}

func (f *fakeCategoryStore) Create(ctx context.Context, category *models.Category) error {
	category.ID = f.nextID
	f.nextID++
	category.IsActive = true
	stored := *category
	f.categories[stored.ID] = &stored
	return nil
}

func (f *fakeCategoryStore) GetByID(ctx context.Context, id int) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCategoryStore) List(ctx context.Context, opts repositories.ListOptions) ([]models.Category, int, error) {
	all := []models.Category{}
	for _, c := range f.categories {
		if opts.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(opts.Search)) {
			continue
		}
		if opts.IsActive != nil && c.IsActive != *opts.IsActive {
			continue
		}
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	start := opts.Offset()
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (f *fakeCategoryStore) Update(ctx context.Context, category *models.Category) error {
	stored := *category
	f.categories[stored.ID] = &stored
	return nil
}

func (f *fakeCategoryStore) Delete(ctx context.Context, id int) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryStore) CountByName(ctx context.Context, name string, excludeID int) (int, error) {
	count := 0
	for _, c := range f.categories {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			count++
		}
	}
	return count, nil
}

type fakeSubCategoryStore struct {
	nextID        int
	subCategories map[int]*models.SubCategory
}

func newFakeSubCategoryStore() *fakeSubCategoryStore {
	return &fakeSubCategoryStore{nextID: 1, subCategories: map[int]*models.SubCategory{}}
}

func (f *fakeSubCategoryStore) add(sc models.SubCategory) *models.SubCategory {
	sc.ID = f.nextID
	f.nextID++
	stored := sc
	f.subCategories[stored.ID] = &stored
	return &stored
}

func (f *fakeSubCategoryStore) Create(ctx context.Context, sub *models.SubCategory) error {
	sub.ID = f.nextID
	f.nextID++
	sub.IsActive = true
	stored := *sub
	f.subCategories[stored.ID] = &stored
	return nil
}

func (f *fakeSubCategoryStore) GetByID(ctx context.Context, id int) (*models.SubCategory, error) {
	sc, ok := f.subCategories[id]
	if !ok {
		return nil, nil
	}
	copied := *sc
	return &copied, nil
}

func (f *fakeSubCategoryStore) List(ctx context.Context, opts repositories.ListOptions) ([]models.SubCategory, int, error) {
	all := []models.SubCategory{}
	for _, sc := range f.subCategories {
		if opts.CategoryID != 0 && sc.CategoryID != opts.CategoryID {
			continue
		}
		if opts.IsActive != nil && sc.IsActive != *opts.IsActive {
			continue
		}
		all = append(all, *sc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, len(all), nil
}

func (f *fakeSubCategoryStore) ListByCategory(ctx context.Context, categoryID int, isActive *bool) ([]models.SubCategory, error) {
	subs := []models.SubCategory{}
	for _, sc := range f.subCategories {
		if sc.CategoryID != categoryID {
			continue
		}
		if isActive != nil && sc.IsActive != *isActive {
			continue
		}
		subs = append(subs, *sc)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].Name < subs[j].Name })
	return subs, nil
}

func (f *fakeSubCategoryStore) Update(ctx context.Context, sub *models.SubCategory) error {
	stored := *sub
	f.subCategories[stored.ID] = &stored
	return nil
}

func (f *fakeSubCategoryStore) Delete(ctx context.Context, id int) error {
	delete(f.subCategories, id)
	return nil
}

func (f *fakeSubCategoryStore) CountByName(ctx context.Context, name string, categoryID, excludeID int) (int, error) {
	count := 0
	for _, sc := range f.subCategories {
		if sc.ID != excludeID && sc.CategoryID == categoryID && strings.EqualFold(sc.Name, name) {
			count++
		}
	}
	return count, nil
}

func (f *fakeSubCategoryStore) CountByCategory(ctx context.Context, categoryID int) (int, error) {
	count := 0
	for _, sc := range f.subCategories {
		if sc.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

type fakeProductStore struct {
	nextID   int
	products map[int]*models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{nextID: 1, products: map[int]*models.Product{}}
}

func (f *fakeProductStore) add(p models.Product) *models.Product {
	p.ID = f.nextID
	f.nextID++
	stored := p
	f.products[stored.ID] = &stored
	return &stored
}

func (f *fakeProductStore) Create(ctx context.Context, product *models.Product) error {
	product.ID = f.nextID
	f.nextID++
	product.IsActive = true
	stored := *product
	f.products[stored.ID] = &stored
	return nil
}

func (f *fakeProductStore) GetByID(ctx context.Context, id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductStore) List(ctx context.Context, opts repositories.ListOptions) ([]models.Product, int, error) {
	all := []models.Product{}
	for _, p := range f.products {
		if opts.SubCategoryID != 0 && p.SubCategoryID != opts.SubCategoryID {
			continue
		}
		if opts.CategoryID != 0 && p.CategoryID != opts.CategoryID {
			continue
		}
		if opts.IsActive != nil && p.IsActive != *opts.IsActive {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	start := opts.Offset()
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (f *fakeProductStore) Search(ctx context.Context, search string, page, limit int) ([]models.Product, int, error) {
	matched := []models.Product{}
	for _, p := range f.products {
		if !p.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(search)) {
			matched = append(matched, *p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, len(matched), nil
}

func (f *fakeProductStore) Update(ctx context.Context, product *models.Product, replaceVariants bool) error {
	stored := *product
	f.products[stored.ID] = &stored
	return nil
}

func (f *fakeProductStore) AddImages(ctx context.Context, productID int, images []models.ProductImage) error {
	p, ok := f.products[productID]
	if ok {
		p.Images = append(p.Images, images...)
	}
	return nil
}

func (f *fakeProductStore) ReplaceImages(ctx context.Context, productID int, images []models.ProductImage) error {
	p, ok := f.products[productID]
	if ok {
		p.Images = images
	}
	return nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id int) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductStore) CountBySubCategory(ctx context.Context, subCategoryID int) (int, error) {
	count := 0
	for _, p := range f.products {
		if p.SubCategoryID == subCategoryID {
			count++
		}
	}
	return count, nil
}

func (f *fakeProductStore) CountActiveBySubCategory(ctx context.Context, subCategoryID int) (int, error) {
	count := 0
	for _, p := range f.products {
		if p.SubCategoryID == subCategoryID && p.IsActive {
			count++
		}
	}
	return count, nil
}

type fakeWishlistStore struct {
	items    [][2]int // ordered (userID, productID) pairs
	products *fakeProductStore
}

func newFakeWishlistStore(products *fakeProductStore) *fakeWishlistStore {
	return &fakeWishlistStore{products: products}
}

func (f *fakeWishlistStore) List(ctx context.Context, userID, page, limit int) ([]models.Product, int, error) {
	ordered := []models.Product{}
	for _, item := range f.items {
		if item[0] != userID {
			continue
		}
		if p, ok := f.products.products[item[1]]; ok {
			ordered = append(ordered, *p)
		}
	}

	total := len(ordered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return ordered[start:end], total, nil
}

func (f *fakeWishlistStore) Contains(ctx context.Context, userID, productID int) (bool, error) {
	for _, item := range f.items {
		if item[0] == userID && item[1] == productID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWishlistStore) Add(ctx context.Context, userID, productID int) error {
	f.items = append(f.items, [2]int{userID, productID})
	return nil
}

func (f *fakeWishlistStore) Remove(ctx context.Context, userID, productID int) error {
	for i, item := range f.items {
		if item[0] == userID && item[1] == productID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeWishlistStore) Clear(ctx context.Context, userID int) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item[0] != userID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeWishlistStore) Count(ctx context.Context, userID int) (int, error) {
	count := 0
	for _, item := range f.items {
		if item[0] == userID {
			count++
		}
	}
	return count, nil
}

type fakeImageStore struct {
	deleted []string
}

func (f *fakeImageStore) Upload(ctx context.Context, file multipart.File, filename, folder string) (string, string, error) {
	return "https://images.test/" + filename, "staged/" + filename, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

package gateway

import (
	"context"
	"errors"
	"net/url"

	"github.com/shoplite/internal/models"
)

const (
	usersPath    = "/users"
	productsPath = "/products"
)

// UserResource 用户集合
type UserResource struct {
	client *Client
}

// GetByID 获取单个用户，404 返回 ErrNotFound
func (r *UserResource) GetByID(ctx context.Context, id models.RecordID) (*models.User, error) {
	if id.IsZero() {
		return nil, &RemoteError{Kind: ErrNotFound, Message: "Could not fetch user"}
	}
	var user models.User
	path := usersPath + "/" + url.PathEscape(id.String())
	if err := r.client.getJSON(ctx, path, nil, "Could not fetch user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Find 按字段等值查询；无匹配返回空切片
func (r *UserResource) Find(ctx context.Context, query url.Values) ([]models.User, error) {
	var users []models.User
	if err := r.client.getJSON(ctx, usersPath, query, "Could not query users", &users); err != nil {
		if IsNotFound(err) {
			return []models.User{}, nil
		}
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// FindByCredentials 按用户名和密码查询
func (r *UserResource) FindByCredentials(ctx context.Context, name, password string) ([]models.User, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("password", password)
	return r.Find(ctx, query)
}

// List 获取全部用户
func (r *UserResource) List(ctx context.Context) ([]models.User, error) {
	return r.Find(ctx, nil)
}

// Replace 整体覆盖用户文档，返回服务端确认后的文档
func (r *UserResource) Replace(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil || user.ID.IsZero() {
		return nil, errors.New("user id is required")
	}
	var saved models.User
	path := usersPath + "/" + url.PathEscape(user.ID.String())
	if err := r.client.putJSON(ctx, path, user, "Could not update user", &saved); err != nil {
		return nil, err
	}
	if saved.ID.IsZero() {
		return user.Clone(), nil
	}
	return &saved, nil
}

// ProductResource 商品集合（只读）
type ProductResource struct {
	client *Client
}

// GetByID 获取单个商品，404 返回 ErrNotFound
func (r *ProductResource) GetByID(ctx context.Context, id models.ProductID) (*models.Product, error) {
	if id <= 0 {
		return nil, &RemoteError{Kind: ErrNotFound, Message: "Could not fetch product"}
	}
	var product models.Product
	if err := r.client.getJSON(ctx, productsPath+"/"+id.String(), nil, "Could not fetch product", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Find 按字段等值查询
func (r *ProductResource) Find(ctx context.Context, query url.Values) ([]models.Product, error) {
	var products []models.Product
	if err := r.client.getJSON(ctx, productsPath, query, "Could not fetch products", &products); err != nil {
		if IsNotFound(err) {
			return []models.Product{}, nil
		}
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// List 获取全部商品
func (r *ProductResource) List(ctx context.Context) ([]models.Product, error) {
	return r.Find(ctx, nil)
}

package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	deleteFlagColumn = "is_deleted"
	deleteTimeColumn = "delete_time"
)

// deleteScope 软删除过滤范围
type deleteScope int

const (
	scopeActive deleteScope = iota
	scopeAll
	scopeDeleted
)

// SoftDeleteQuery 软删除查询构造器
//
// 默认只匹配 is_deleted = false 的记录. IncludeDeleted 解除该条件,
// OnlyDeleted 先解除再改为 is_deleted = true. 构造器不可变,
// 每个方法返回新的实例, 共享同一个底层连接(或事务).
//
// 注意: 该实体上的 Delete 是逻辑删除, 物理删除必须显式调用 HardDelete.
type SoftDeleteQuery[T any] struct {
	db     *gorm.DB
	scope  deleteScope
	scopes []func(*gorm.DB) *gorm.DB
}

// NewSoftDeleteQuery 创建默认过滤已删除记录的查询
func NewSoftDeleteQuery[T any](db *gorm.DB) *SoftDeleteQuery[T] {
	return &SoftDeleteQuery[T]{db: db, scope: scopeActive}
}

func (q *SoftDeleteQuery[T]) clone() *SoftDeleteQuery[T] {
	scopes := make([]func(*gorm.DB) *gorm.DB, len(q.scopes))
	copy(scopes, q.scopes)
	return &SoftDeleteQuery[T]{db: q.db, scope: q.scope, scopes: scopes}
}

func (q *SoftDeleteQuery[T]) withScope(scope deleteScope) *SoftDeleteQuery[T] {
	next := q.clone()
	next.scope = scope
	return next
}

// Scoped 只包含未删除的记录
func (q *SoftDeleteQuery[T]) Scoped() *SoftDeleteQuery[T] {
	return q.withScope(scopeActive)
}

// IncludeDeleted 包含已删除的记录
func (q *SoftDeleteQuery[T]) IncludeDeleted() *SoftDeleteQuery[T] {
	return q.withScope(scopeAll)
}

// OnlyDeleted 仅包含已删除的记录
func (q *SoftDeleteQuery[T]) OnlyDeleted() *SoftDeleteQuery[T] {
	return q.withScope(scopeDeleted)
}

// Where 追加筛选条件, 切换删除范围时保留
func (q *SoftDeleteQuery[T]) Where(query interface{}, args ...interface{}) *SoftDeleteQuery[T] {
	return q.Scopes(func(tx *gorm.DB) *gorm.DB {
		return tx.Where(query, args...)
	})
}

// Scopes 追加 gorm scope
func (q *SoftDeleteQuery[T]) Scopes(fns ...func(*gorm.DB) *gorm.DB) *SoftDeleteQuery[T] {
	next := q.clone()
	next.scopes = append(next.scopes, fns...)
	return next
}

// DB 生成当前范围下的查询语句
func (q *SoftDeleteQuery[T]) DB(ctx context.Context) *gorm.DB {
	return q.build(ctx, q.scope)
}

func (q *SoftDeleteQuery[T]) build(ctx context.Context, scope deleteScope) *gorm.DB {
	tx := q.db.WithContext(ctx).Model(new(T))

	flag := clause.Column{Table: clause.CurrentTable, Name: deleteFlagColumn}
	switch scope {
	case scopeActive:
		tx = tx.Where(clause.Eq{Column: flag, Value: false})
	case scopeDeleted:
		tx = tx.Where(clause.Eq{Column: flag, Value: true})
	}

	return tx.Scopes(q.scopes...)
}

// Find 查询全部匹配记录(按主键升序)
func (q *SoftDeleteQuery[T]) Find(ctx context.Context) ([]T, error) {
	var items []T
	err := q.DB(ctx).Order(clause.OrderByColumn{Column: clause.PrimaryColumn}).Find(&items).Error
	return items, err
}

// First 查询第一条匹配记录, 不存在时返回 gorm.ErrRecordNotFound
func (q *SoftDeleteQuery[T]) First(ctx context.Context) (*T, error) {
	var item T
	if err := q.DB(ctx).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Count 统计匹配记录数
func (q *SoftDeleteQuery[T]) Count(ctx context.Context) (int64, error) {
	var total int64
	err := q.DB(ctx).Count(&total).Error
	return total, err
}

// Exists 是否存在匹配记录
func (q *SoftDeleteQuery[T]) Exists(ctx context.Context) (bool, error) {
	total, err := q.Count(ctx)
	return total > 0, err
}

// Page 分页查询(按主键升序)
func (q *SoftDeleteQuery[T]) Page(ctx context.Context, offset, limit int) ([]T, error) {
	var items []T
	err := q.DB(ctx).
		Order(clause.OrderByColumn{Column: clause.PrimaryColumn}).
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, err
}

// Updates 在当前范围内批量更新, 返回影响行数
func (q *SoftDeleteQuery[T]) Updates(ctx context.Context, values map[string]interface{}) (int64, error) {
	result := q.DB(ctx).Updates(values)
	return result.RowsAffected, result.Error
}

// SoftDelete 批量逻辑删除
//
// 只会修改尚未删除的记录, 返回影响行数, 不会回查数据
func (q *SoftDeleteQuery[T]) SoftDelete(ctx context.Context) (int64, error) {
	result := q.build(ctx, scopeActive).Updates(map[string]interface{}{
		deleteFlagColumn: true,
		deleteTimeColumn: q.db.NowFunc(),
	})
	return result.RowsAffected, result.Error
}

// Delete 等同于 SoftDelete
func (q *SoftDeleteQuery[T]) Delete(ctx context.Context) (int64, error) {
	return q.SoftDelete(ctx)
}

// Restore 批量恢复已删除的记录
func (q *SoftDeleteQuery[T]) Restore(ctx context.Context) (int64, error) {
	result := q.build(ctx, scopeDeleted).Updates(map[string]interface{}{
		deleteFlagColumn: false,
		deleteTimeColumn: nil,
	})
	return result.RowsAffected, result.Error
}

// HardDelete 物理删除, 忽略软删除条件
func (q *SoftDeleteQuery[T]) HardDelete(ctx context.Context) (int64, error) {
	result := q.build(ctx, scopeAll).Delete(new(T))
	return result.RowsAffected, result.Error
}

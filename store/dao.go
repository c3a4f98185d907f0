package store

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Dao struct {
	db *gorm.DB
}

func NewDao(url, scheme, user, passwd string) *Dao {
	dao := &Dao{}
	Logger := logger.Default
	Logger = Logger.LogMode(logger.Info)
	db, err := gorm.Open(mysql.Open(user+":"+passwd+"@tcp("+url+")/"+
		scheme+"?charset=utf8"), &gorm.Config{Logger: Logger})
	if err != nil {
		panic(err)
	}
	err = db.Debug().AutoMigrate(&LocalRoute{}, &LocalRouteStep{}, &CommittedRoute{}, &CommittedRouteStep{}, &ExecutedRoute{})
	if err != nil {
		panic(err)
	}
	dao.db = db
	return dao
}

func (dao *Dao) SaveLocalRoute(route *LocalRoute) error {
	return dao.db.Create(route).Error
}

func (dao *Dao) SaveCommittedRoute(route *CommittedRoute) error {
	return dao.db.Create(route).Error
}

func (dao *Dao) SaveExecutedRoute(route *ExecutedRoute) error {
	return dao.db.Create(route).Error
}

func (dao *Dao) SelectLocalRoute(id uint64) ([]*LocalRoute, error) {
	localRoute := make([]*LocalRoute, 0)
	res := dao.db.Where("id = ?", id).Preload("LocalRouteSteps").Find(&localRoute)
	return localRoute, res.Error
}

func (dao *Dao) SelectCommittedRoute(id uint64) ([]*CommittedRoute, error) {
	committedRoute := make([]*CommittedRoute, 0)
	res := dao.db.Where("id = ?", id).Preload("CommittedRouteSteps").Find(&committedRoute)
	return committedRoute, res.Error
}

func (dao *Dao) SelectExecutedRoute(id uint64) ([]*ExecutedRoute, error) {
	executedRoute := make([]*ExecutedRoute, 0)
	res := dao.db.Where("id = ?", id).Find(&executedRoute)
	return executedRoute, res.Error
}

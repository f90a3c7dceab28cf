package models

import (
	"yatube/db"

	"gorm.io/gorm"
)

// Follow is a directed edge: Follower sees Followee's posts in the personal feed
type Follow struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli"`
	FollowerID uint64 `gorm:"not null;index:uniq_follow,unique,priority:1"`
	Follower   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FolloweeID uint64 `gorm:"not null;index:uniq_follow,unique,priority:2;index:idx_followee"`
	Followee   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// FollowUser creates the edge. Following somebody twice is not an error:
// the unique index is the guard, a violation means the edge already exists
func FollowUser(tx *gorm.DB, followerID, followeeID uint64) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	err := tx.Create(&Follow{FollowerID: followerID, FolloweeID: followeeID}).Error
	if db.IsDuplicateKey(err) {
		return nil
	}
	return err
}

// UnfollowUser removes the edge if present
func UnfollowUser(tx *gorm.DB, followerID, followeeID uint64) error {
	return tx.
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&Follow{}).Error
}

func IsFollowing(tx *gorm.DB, followerID, followeeID uint64) (bool, error) {
	var count int64
	err := tx.Model(&Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// FollowerCount is the number of users following userID
func FollowerCount(tx *gorm.DB, userID uint64) (count int64, err error) {
	err = tx.Model(&Follow{}).Where("followee_id = ?", userID).Count(&count).Error
	return
}

// FollowingCount is the number of users userID follows
func FollowingCount(tx *gorm.DB, userID uint64) (count int64, err error) {
	err = tx.Model(&Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return
}

// FolloweesOf is a sub-query selecting the IDs of everybody userID follows
func FolloweesOf(tx *gorm.DB, userID uint64) *gorm.DB {
	return tx.Model(&Follow{}).Select("followee_id").Where("follower_id = ?", userID)
}
